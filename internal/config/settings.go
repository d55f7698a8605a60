package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/micro-editor/json5"
)

const (
	// SettingsFileName is the name of the settings file inside ConfigDir
	SettingsFileName = "settings.json"

	DefaultFPS             = 30
	DefaultStarDensity     = 1000
	DefaultMaxStars        = 4000
	DefaultMaxStreaks      = 32
	DefaultStreakChance    = 0.03
	DefaultNebulae         = 5
	DefaultAccentColor     = "#bd93f9"
	DefaultBackgroundColor = "#0b0614"
)

// GalaxySettings controls the animated background
type GalaxySettings struct {
	Enabled      bool    `json:"enabled"`
	FPS          int     `json:"fps"`
	StarDensity  float64 `json:"star_density"`
	MaxStars     int     `json:"max_stars"`
	MaxStreaks   int     `json:"max_streaks"`
	StreakChance float64 `json:"streak_chance"`
	Nebulae      int     `json:"nebulae"`
}

// AppearanceSettings contains colours for the calculator panel
type AppearanceSettings struct {
	AccentColor     string `json:"accent_color"`
	BackgroundColor string `json:"background_color"`
}

// CalculatorSettings contains calculator behaviour settings
type CalculatorSettings struct {
	StartInHistory bool `json:"start_in_history"`
}

// Settings holds everything read from settings.json
type Settings struct {
	Galaxy     GalaxySettings     `json:"galaxy"`
	Appearance AppearanceSettings `json:"appearance"`
	Calculator CalculatorSettings `json:"calculator"`

	// Bindings maps an action name to a comma separated list of keys
	Bindings map[string]string `json:"bindings,omitempty"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() *Settings {
	return &Settings{
		Galaxy: GalaxySettings{
			Enabled:      true,
			FPS:          DefaultFPS,
			StarDensity:  DefaultStarDensity,
			MaxStars:     DefaultMaxStars,
			MaxStreaks:   DefaultMaxStreaks,
			StreakChance: DefaultStreakChance,
			Nebulae:      DefaultNebulae,
		},
		Appearance: AppearanceSettings{
			AccentColor:     DefaultAccentColor,
			BackgroundColor: DefaultBackgroundColor,
		},
	}
}

// SettingsFilePath returns the path to settings.json
func SettingsFilePath() string {
	return filepath.Join(ConfigDir, SettingsFileName)
}

// EnsureSettingsFile writes the defaults if settings.json doesn't exist
func EnsureSettingsFile() error {
	if _, err := os.Stat(SettingsFilePath()); os.IsNotExist(err) {
		return SaveSettings(DefaultSettings())
	}
	return nil
}

// LoadSettings reads settings.json. Problems are logged and the defaults
// are used in their place; it always returns usable settings.
func LoadSettings() *Settings {
	settings, errs := ReloadSettings()
	for _, e := range errs {
		log.Printf("STARCALC Settings: %v", e)
	}
	if settings == nil {
		return DefaultSettings()
	}
	return settings
}

// ReloadSettings reads settings.json and returns validation errors if any.
// Settings are nil whenever errors are returned. A missing file yields the
// defaults.
func ReloadSettings() (*Settings, []ValidationError) {
	data, err := os.ReadFile(SettingsFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, []ValidationError{{
			Field:   "file",
			Message: "Failed to read settings file: " + err.Error(),
		}}
	}

	settings, errs := ValidateSettingsJSON(data)
	if len(errs) > 0 {
		return nil, errs
	}

	log.Printf("STARCALC Settings: Loaded %s", SettingsFilePath())
	return settings, nil
}

// SaveSettings writes settings to settings.json as plain JSON
func SaveSettings(settings *Settings) error {
	if err := os.MkdirAll(ConfigDir, 0755); err != nil {
		log.Printf("STARCALC Settings: Failed to create config dir: %v", err)
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(SettingsFilePath(), data, 0644); err != nil {
		log.Printf("STARCALC Settings: Failed to write settings.json: %v", err)
		return err
	}
	return nil
}

// IsSettingsFile checks if path names settings.json
func IsSettingsFile(path string) bool {
	settingsPath := SettingsFilePath()
	absPath, err1 := filepath.Abs(path)
	absSettings, err2 := filepath.Abs(settingsPath)
	if err1 != nil || err2 != nil {
		return path == settingsPath
	}
	return absPath == absSettings
}

// ValidationError represents a settings validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSettingsJSON parses JSON5 content over the defaults and validates
// the result. Keys missing from data keep their default values.
func ValidateSettingsJSON(data []byte) (*Settings, []ValidationError) {
	settings := DefaultSettings()
	if err := json5.Unmarshal(data, settings); err != nil {
		return nil, []ValidationError{{
			Field:   "json",
			Message: "Invalid JSON: " + err.Error(),
		}}
	}

	if errs := validateSettings(settings); len(errs) > 0 {
		return settings, errs
	}
	return settings, nil
}

func validateSettings(s *Settings) []ValidationError {
	var errors []ValidationError
	add := func(field, msg string) {
		errors = append(errors, ValidationError{Field: field, Message: msg})
	}

	g := s.Galaxy
	if g.FPS < 1 || g.FPS > 120 {
		add("galaxy.fps", "must be between 1 and 120")
	}
	if g.StarDensity < 100 {
		add("galaxy.star_density", "must be >= 100")
	}
	if g.MaxStars < 0 || g.MaxStars > 20000 {
		add("galaxy.max_stars", "must be between 0 and 20000")
	}
	if g.MaxStreaks < 0 || g.MaxStreaks > 256 {
		add("galaxy.max_streaks", "must be between 0 and 256")
	}
	if g.StreakChance < 0 || g.StreakChance > 1 {
		add("galaxy.streak_chance", "must be between 0 and 1")
	}
	if g.Nebulae < 0 || g.Nebulae > 50 {
		add("galaxy.nebulae", "must be between 0 and 50")
	}

	if _, ok := StringToColor(s.Appearance.AccentColor); !ok {
		add("appearance.accent_color", "must be a colour name, 256-colour number or hex color (e.g., #bd93f9)")
	}
	if _, ok := StringToColor(s.Appearance.BackgroundColor); !ok {
		add("appearance.background_color", "must be a colour name, 256-colour number or hex color (e.g., #0b0614)")
	}

	// Sorted so errors come out in a stable order
	actions := make([]string, 0, len(s.Bindings))
	for action := range s.Bindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		if err := validateBinding(action, s.Bindings[action]); err != nil {
			add("bindings."+action, err.Error())
		}
	}

	return errors
}
