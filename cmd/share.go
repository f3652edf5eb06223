package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/clipboard"
	"github.com/brpalette/brpalette/internal/palette"
)

var shareCmd = &cobra.Command{
	Use:   "share <saved-id>",
	Short: "Print the share link for a saved palette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()

		svc, err := openServices(false, settingsTheme(globalSettings.General.Theme))
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := resolvePalette(svc.ctrl.Snapshot().Saved, args[0])
		if err != nil {
			return err
		}

		base, _ := cmd.Flags().GetString("base-url")
		if base == "" {
			base = globalSettings.General.ShareBaseURL
		}
		link := palette.ShareLink(base, p)
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, link)

		if copyLink, _ := cmd.Flags().GetBool("copy"); copyLink {
			if err := clipboard.Copy(link); err != nil {
				return fmt.Errorf("could not access the clipboard: %w", err)
			}
			printSuccess(out, "Share link copied to clipboard!")
		}
		return nil
	},
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <link>",
	Short: "Decode a share link into a palette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := palette.DecodeShareLink(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if save, _ := cmd.Flags().GetBool("save"); save {
			initializeGlobalState()
			svc, err := openServices(false, settingsTheme(globalSettings.General.Theme))
			if err != nil {
				return err
			}
			defer svc.Close()
			if _, err := svc.ctrl.Save(p); err != nil {
				return err
			}
			defer printSuccess(out, "Palette saved!")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, p)
		}
		printPalette(out, p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.AddCommand(shareDecodeCmd)
	shareCmd.Flags().String("base-url", "", "Address to build the link on (default from settings)")
	shareCmd.Flags().Bool("copy", false, "Also copy the link to the clipboard")
	shareDecodeCmd.Flags().Bool("save", false, "Add the decoded palette to your saved collection")
	shareDecodeCmd.Flags().Bool("json", false, "Print the palette as JSON")
}
