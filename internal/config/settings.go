package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Settings holds all user-configurable application settings organized by category.
type Settings struct {
	General GeneralSettings `json:"general"`
	Model   ModelSettings   `json:"model"`
	Server  ServerSettings  `json:"server"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	Theme             string `json:"theme"`
	DefaultPrompt     string `json:"default_prompt"`
	ShareBaseURL      string `json:"share_base_url"`
	CopyOnGenerate    bool   `json:"copy_on_generate"`
	LogRetentionCount int    `json:"log_retention_count"`
}

// Theme preferences. System defers to the terminal background.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// ModelSettings tunes the generative model requests.
type ModelSettings struct {
	Name                 string        `json:"name"`
	BaseURL              string        `json:"base_url"`
	PaletteTemperature   float64       `json:"palette_temperature"`
	VariationTemperature float64       `json:"variation_temperature"`
	Timeout              time.Duration `json:"timeout"`
}

type plainModelSettings ModelSettings

// MarshalJSON writes the timeout as a duration string such as "1m0s".
func (m ModelSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		plainModelSettings
		Timeout string `json:"timeout"`
	}{plainModelSettings(m), m.Timeout.String()})
}

// UnmarshalJSON accepts the timeout as a duration string ("60s") or as a
// number of nanoseconds.
func (m *ModelSettings) UnmarshalJSON(data []byte) error {
	aux := struct {
		*plainModelSettings
		Timeout json.RawMessage `json:"timeout"`
	}{plainModelSettings: (*plainModelSettings)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Timeout) == 0 || string(aux.Timeout) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(aux.Timeout, &text); err == nil {
		d, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("model.timeout: %w", err)
		}
		m.Timeout = d
		return nil
	}
	var nanos int64
	if err := json.Unmarshal(aux.Timeout, &nanos); err != nil {
		return fmt.Errorf("model.timeout: want a duration like \"60s\", got %s", aux.Timeout)
	}
	m.Timeout = time.Duration(nanos)
	return nil
}

// ServerSettings configures `brpalette serve`.
type ServerSettings struct {
	Listen string `json:"listen"`
}

// SettingMeta provides metadata for a single setting (for display).
type SettingMeta struct {
	Key         string // JSON key name
	Label       string // Human-readable label
	Description string
	Type        string // "string", "int", "bool", "duration", "float64"
}

// GetSettingsMetadata returns metadata for all settings organized by category.
func GetSettingsMetadata() map[string][]SettingMeta {
	return map[string][]SettingMeta{
		"General": {
			{Key: "theme", Label: "Theme", Description: "Initial theme (system, light, dark). A toggled theme is remembered separately.", Type: "string"},
			{Key: "default_prompt", Label: "Default Prompt", Description: "Description generated on startup when no share link is given.", Type: "string"},
			{Key: "share_base_url", Label: "Share Base URL", Description: "Address share links are built on.", Type: "string"},
			{Key: "copy_on_generate", Label: "Copy on Generate", Description: "Copy the share link after every generation.", Type: "bool"},
			{Key: "log_retention_count", Label: "Log Retention Count", Description: "Number of recent log files to keep.", Type: "int"},
		},
		"Model": {
			{Key: "name", Label: "Model", Description: "Generative model name.", Type: "string"},
			{Key: "base_url", Label: "Base URL", Description: "Generative service endpoint.", Type: "string"},
			{Key: "palette_temperature", Label: "Palette Temperature", Description: "Sampling temperature for new palettes.", Type: "float64"},
			{Key: "variation_temperature", Label: "Variation Temperature", Description: "Sampling temperature for variations.", Type: "float64"},
			{Key: "timeout", Label: "Timeout", Description: "Per-request timeout (e.g., 60s).", Type: "duration"},
		},
		"Server": {
			{Key: "listen", Label: "Listen Address", Description: "Address for the local HTTP API.", Type: "string"},
		},
	}
}

// CategoryOrder returns the display order of categories.
func CategoryOrder() []string {
	return []string{"General", "Model", "Server"}
}

// Defaults shared with the generator and genai packages.
const (
	DefaultPrompt       = "Serene coastal sunrise"
	DefaultShareBaseURL = "https://brpalette.app/"
	DefaultModel        = "gemini-2.5-flash"
	DefaultModelURL     = "https://generativelanguage.googleapis.com"
	DefaultListen       = "127.0.0.1:1719"
)

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			Theme:             ThemeSystem,
			DefaultPrompt:     DefaultPrompt,
			ShareBaseURL:      DefaultShareBaseURL,
			CopyOnGenerate:    false,
			LogRetentionCount: 5,
		},
		Model: ModelSettings{
			Name:                 DefaultModel,
			BaseURL:              DefaultModelURL,
			PaletteTemperature:   0.8,
			VariationTemperature: 0.9,
			Timeout:              60 * time.Second,
		},
		Server: ServerSettings{
			Listen: DefaultListen,
		},
	}
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetAppDir(), "settings.json")
}

// LoadSettings loads settings from disk. Returns defaults if file doesn't exist.
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings saves settings to disk atomically.
func SaveSettings(s *Settings) error {
	path := GetSettingsPath()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}

// Env is the environment surface. Unset variables leave settings untouched.
type Env struct {
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	APIKey       string `envconfig:"API_KEY"`
	Model        string `envconfig:"BRPALETTE_MODEL"`
	ModelURL     string `envconfig:"BRPALETTE_MODEL_URL"`
	Listen       string `envconfig:"BRPALETTE_LISTEN"`
}

// LoadEnv reads .env from the working directory and the config dir, then the
// process environment. Existing variables win over .env files.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()
	_ = godotenv.Load(filepath.Join(GetAppDir(), ".env"))

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Key returns the generative service API key, preferring GEMINI_API_KEY.
func (e Env) Key() string {
	if e.GeminiAPIKey != "" {
		return e.GeminiAPIKey
	}
	return e.APIKey
}

// ApplyEnv overlays non-empty environment values onto s.
func (s *Settings) ApplyEnv(e Env) {
	if e.Model != "" {
		s.Model.Name = e.Model
	}
	if e.ModelURL != "" {
		s.Model.BaseURL = e.ModelURL
	}
	if e.Listen != "" {
		s.Server.Listen = e.Listen
	}
}

// Load is LoadSettings followed by the environment overlay. A broken settings
// file falls back to defaults so the app still starts.
func Load() (*Settings, Env, error) {
	settings, err := LoadSettings()
	if err != nil {
		settings = DefaultSettings()
	}
	env, envErr := LoadEnv()
	if envErr != nil {
		return settings, env, envErr
	}
	settings.ApplyEnv(env)
	return settings, env, err
}
