package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brpalette/brpalette/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect brpalette settings",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings, data and log locations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "settings  %s\n", config.GetSettingsPath())
		_, _ = fmt.Fprintf(out, "database  %s\n", config.GetDBPath())
		_, _ = fmt.Fprintf(out, "logs      %s\n", config.GetLogsDir())
		_, _ = fmt.Fprintf(out, "token     %s\n", config.GetTokenPath())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long:  `Print the settings after defaults and environment overrides are applied.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, globalSettings)
		}

		values := settingValues(globalSettings)
		meta := config.GetSettingsMetadata()
		for i, category := range config.CategoryOrder() {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			printInfo(out, "[%s]", category)
			for _, m := range meta[category] {
				_, _ = fmt.Fprintf(out, "  %-22s %v\n", m.Label, values[category+"."+m.Key])
			}
		}

		key := "not set"
		if globalEnv.Key() != "" {
			key = "set"
		}
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintf(out, "  %-22s %s\n", "API key", key)
		return nil
	},
}

// settingValues flattens settings into "Category.key" entries matching the
// metadata keys.
func settingValues(s *config.Settings) map[string]any {
	return map[string]any{
		"General.theme":               s.General.Theme,
		"General.default_prompt":      s.General.DefaultPrompt,
		"General.share_base_url":      s.General.ShareBaseURL,
		"General.copy_on_generate":    s.General.CopyOnGenerate,
		"General.log_retention_count": s.General.LogRetentionCount,
		"Model.name":                  s.Model.Name,
		"Model.base_url":              s.Model.BaseURL,
		"Model.palette_temperature":   s.Model.PaletteTemperature,
		"Model.variation_temperature": s.Model.VariationTemperature,
		"Model.timeout":               s.Model.Timeout,
		"Server.listen":               s.Server.Listen,
	}
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file if none exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initializeGlobalState()
		path := config.GetSettingsPath()
		if _, err := os.Stat(path); err == nil {
			printInfo(cmd.OutOrStdout(), "Settings already exist at %s", path)
			return nil
		}
		if err := config.SaveSettings(config.DefaultSettings()); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Wrote %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd)
	configShowCmd.Flags().Bool("json", false, "Print as JSON")
}
