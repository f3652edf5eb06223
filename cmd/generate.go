package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/palette"
)

var generateCmd = &cobra.Command{
	Use:   "generate <description...>",
	Short: "Generate a palette from a mood description",
	Long: `Generate a five colour palette for the description and print it.

The theme defaults to the one last used in the interactive studio.`,
	Example: `  brpalette generate serene coastal sunrise
  brpalette generate "neon night market" --theme dark --save`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()

		svc, err := openServices(true, settingsTheme(globalSettings.General.Theme))
		if err != nil {
			return err
		}
		defer svc.Close()

		themeValue, _ := cmd.Flags().GetString("theme")
		save, _ := cmd.Flags().GetBool("save")
		asJSON, _ := cmd.Flags().GetBool("json")

		theme, err := themeFlag(themeValue, svc.ctrl.Snapshot().Theme)
		if err != nil {
			return err
		}

		description := strings.Join(args, " ")
		p, err := svc.gen.GeneratePalette(cmd.Context(), description, theme)
		if err != nil {
			return err
		}

		if save {
			if _, err := svc.ctrl.Save(p); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, p)
		}
		printPalette(out, p)
		if save {
			printSuccess(out, "Palette saved!")
		}
		printInfo(out, "%s", palette.ShareLink(globalSettings.General.ShareBaseURL, p))
		return nil
	},
}

var varyCmd = &cobra.Command{
	Use:   "vary <saved-id|share-link>",
	Short: "Generate four variations of a palette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()

		svc, err := openServices(true, settingsTheme(globalSettings.General.Theme))
		if err != nil {
			return err
		}
		defer svc.Close()

		themeValue, _ := cmd.Flags().GetString("theme")
		asJSON, _ := cmd.Flags().GetBool("json")

		state := svc.ctrl.Snapshot()
		theme, err := themeFlag(themeValue, state.Theme)
		if err != nil {
			return err
		}
		base, err := resolvePalette(state.Saved, args[0])
		if err != nil {
			return err
		}

		variations, err := svc.gen.GenerateVariations(cmd.Context(), base, theme)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, variations)
		}
		for i, v := range variations {
			if i > 0 {
				_, _ = out.Write([]byte("\n"))
			}
			printPalette(out, v)
			printInfo(out, "%s", palette.ShareLink(globalSettings.General.ShareBaseURL, v))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("theme", "", "Theme to design for (light or dark)")
	generateCmd.Flags().Bool("save", false, "Add the palette to your saved collection")
	generateCmd.Flags().Bool("json", false, "Print the palette as JSON")

	rootCmd.AddCommand(varyCmd)
	varyCmd.Flags().String("theme", "", "Theme to design for (light or dark)")
	varyCmd.Flags().Bool("json", false, "Print the variations as JSON")
}
