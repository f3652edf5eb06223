package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/export"
	"github.com/brpalette/brpalette/internal/palette"
)

var exportCmd = &cobra.Command{
	Use:   "export <saved-id|share-link>",
	Short: "Export a palette as JSON, CSS, TOML or YAML",
	Example: `  brpalette export 1a2b3c4d --format css
  brpalette export "#palette=F5EFE6,2B2D42,D9E4EC,5FA8D3,F4A259" -f toml -o theme.toml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

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

		if output == "" || output == "-" {
			return export.Write(cmd.OutOrStdout(), p, format)
		}

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := export.Write(f, p, format); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		printSuccess(cmd.ErrOrStderr(), "Exported %s to %s", p.ShortID(), output)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save a palette from a JSON, TOML or YAML export",
	Long: `Read a palette written by 'brpalette export' and add it to the saved
collection. The format follows the file extension unless --format is given.
Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		if formatName == "" {
			formatName = strings.TrimPrefix(filepath.Ext(args[0]), ".")
		}
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		var data []byte
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return err
		}

		p, err := export.Read(data, format)
		if err != nil {
			return err
		}
		if err := validateImported(&p); err != nil {
			return err
		}

		initializeGlobalState()
		svc, err := openServices(false, settingsTheme(globalSettings.General.Theme))
		if err != nil {
			return err
		}
		defer svc.Close()

		added, err := svc.ctrl.Save(p)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !added {
			printInfo(out, "Palette already saved. (%s)", p.ShortID())
			return nil
		}
		printSuccess(out, "Palette saved! (%s)", p.ShortID())
		return nil
	},
}

// validateImported checks colours and assigns an ID when the file had none.
func validateImported(p *palette.Palette) error {
	if len(p.Colors) == 0 {
		return fmt.Errorf("palette has no colors")
	}
	for i, c := range p.Colors {
		if !palette.ValidHex(c.Hex) {
			return fmt.Errorf("color %d: invalid hex %q", i+1, c.Hex)
		}
	}
	if strings.TrimSpace(p.ID) == "" {
		p.ID = palette.NewID()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", string(export.JSON), "Output format: json, css, toml or yaml")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")

	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringP("format", "f", "", "Input format: json, toml or yaml")
}
