package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/tui/components"
)

var savedCmd = &cobra.Command{
	Use:     "saved",
	Aliases: []string{"ls"},
	Short:   "List and manage saved palettes",
	Args:    cobra.NoArgs,
	RunE:    runSavedList,
}

var savedListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved palettes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSavedList,
}

func runSavedList(cmd *cobra.Command, args []string) error {
	initializeGlobalState()

	svc, err := openServices(false, settingsTheme(globalSettings.General.Theme))
	if err != nil {
		return err
	}
	defer svc.Close()

	saved := svc.ctrl.Snapshot().Saved
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, saved)
	}
	if len(saved) == 0 {
		printInfo(out, "No saved palettes yet.")
		return nil
	}
	for _, p := range saved {
		strip := components.NewStripModel(p.Hexes(), 15).View()
		_, _ = fmt.Fprintf(out, "%s  %s  %s\n", mutedColor.Sprint(p.ShortID()), strip, p.Prompt)
	}
	return nil
}

var savedShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved palette",
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

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, p)
		}
		printPalette(out, p)
		return nil
	},
}

var savedRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Remove a saved palette",
	Args:    cobra.ExactArgs(1),
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
		if err := svc.ctrl.Delete(p.ID); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Palette deleted. (%s)", p.ShortID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd, savedShowCmd, savedRmCmd)
	savedCmd.Flags().Bool("json", false, "Print as JSON")
	savedListCmd.Flags().Bool("json", false, "Print as JSON")
	savedShowCmd.Flags().Bool("json", false, "Print as JSON")
}
