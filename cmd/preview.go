package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/colorutil"
	"github.com/brpalette/brpalette/internal/palette"
	"github.com/brpalette/brpalette/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <saved-id|share-link>",
	Short: "Render the UI preview of a palette once",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		dark, _ := cmd.Flags().GetBool("dark")

		var p palette.Palette
		var err error
		if strings.Contains(args[0], palette.ShareMarker) {
			p, err = palette.DecodeShareLink(args[0])
		} else {
			initializeGlobalState()
			svc, openErr := openServices(false, settingsTheme(globalSettings.General.Theme))
			if openErr != nil {
				return openErr
			}
			defer svc.Close()
			p, err = resolvePalette(svc.ctrl.Snapshot().Saved, args[0])
		}
		if err != nil {
			return err
		}

		mode := palette.Light
		if dark {
			mode = palette.Dark
		}
		scheme, ok := preview.NewScheme(p, mode)
		if !ok {
			return fmt.Errorf("preview needs a palette with at least %d colors, got %d", palette.Size, len(p.Colors))
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), preview.Render(scheme, preview.RenderOptions{Width: width}))
		return nil
	},
}

var contrastCmd = &cobra.Command{
	Use:   "contrast <hex>",
	Short: "Print the readable text colour for a background",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), colorutil.ContrastColor(args[0]))
	},
}

var shadeCmd = &cobra.Command{
	Use:   "shade <hex> <percent>",
	Short: "Lighten (positive) or darken (negative) a colour",
	Example: `  brpalette shade "#5FA8D3" -10`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		percent, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid percent %q: %w", args[1], err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), colorutil.ShadeColor(args[0], percent))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().Int("width", 72, "Render width in columns")
	previewCmd.Flags().Bool("dark", false, "Render the dark variant")

	rootCmd.AddCommand(contrastCmd)

	rootCmd.AddCommand(shadeCmd)
	// "-10" must reach the command as an argument
	shadeCmd.Flags().SetInterspersed(false)
}
