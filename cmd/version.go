package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/version"
)

var newChecker = version.NewChecker

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and optionally check for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "brpalette %s (built %s)\n", Version, BuildTime)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		info, err := newChecker().Check(cmd.Context(), Version)
		if err != nil {
			return err
		}
		switch {
		case info == nil:
			printInfo(out, "Development build; update check skipped.")
		case info.UpdateAvailable:
			printSuccess(out, "brpalette %s is available: %s", info.LatestVersion, info.ReleaseURL)
		default:
			printInfo(out, "You are on the latest release.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("check", false, "Check for a newer release")
}
