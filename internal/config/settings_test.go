package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	old := ConfigDir
	ConfigDir = t.TempDir()
	t.Cleanup(func() { ConfigDir = old })
	return ConfigDir
}

func writeSettings(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(SettingsFilePath(), []byte(content), 0644))
}

func TestInitConfigDir_EnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "calc")
	t.Setenv("STARCALC_CONFIG_HOME", dir)
	old := ConfigDir
	defer func() { ConfigDir = old }()

	require.NoError(t, InitConfigDir(""))

	assert.Equal(t, dir, ConfigDir)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitConfigDir_XDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("STARCALC_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := FindConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "starcalc"), dir)
}

func TestInitConfigDir_Flag(t *testing.T) {
	t.Setenv("STARCALC_CONFIG_HOME", filepath.Join(t.TempDir(), "env"))
	old := ConfigDir
	defer func() { ConfigDir = old }()

	flagDir := t.TempDir()
	require.NoError(t, InitConfigDir(flagDir))
	assert.Equal(t, flagDir, ConfigDir)

	err := InitConfigDir(filepath.Join(flagDir, "missing"))
	assert.Error(t, err)
	assert.Equal(t, os.Getenv("STARCALC_CONFIG_HOME"), ConfigDir)
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	useTempConfigDir(t)

	s := LoadSettings()

	assert.Equal(t, DefaultSettings(), s)
	assert.True(t, s.Galaxy.Enabled)
	assert.Equal(t, DefaultFPS, s.Galaxy.FPS)
}

func TestLoadSettings_JSON5(t *testing.T) {
	useTempConfigDir(t)
	writeSettings(t, `{
		// Slow it down on this machine
		"galaxy": {
			"fps": 15,
			"enabled": false
		},
		"appearance": {"accent_color": "cyan"},
		"calculator": {"start_in_history": true}
	}`)

	s := LoadSettings()

	assert.Equal(t, 15, s.Galaxy.FPS)
	assert.False(t, s.Galaxy.Enabled)
	assert.Equal(t, DefaultMaxStreaks, s.Galaxy.MaxStreaks, "missing keys keep their defaults")
	assert.Equal(t, "cyan", s.Appearance.AccentColor)
	assert.Equal(t, DefaultBackgroundColor, s.Appearance.BackgroundColor)
	assert.True(t, s.Calculator.StartInHistory)
}

func TestLoadSettings_InvalidFallsBackToDefaults(t *testing.T) {
	useTempConfigDir(t)
	writeSettings(t, `{"galaxy": {"fps": 0}}`)

	assert.Equal(t, DefaultSettings(), LoadSettings())
}

func TestReloadSettings_ReportsErrors(t *testing.T) {
	useTempConfigDir(t)
	writeSettings(t, `{"galaxy": {"fps": 500, "streak_chance": 2}, "appearance": {"accent_color": "#zzzzzz"}}`)

	s, errs := ReloadSettings()

	assert.Nil(t, s)
	var fields []string
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"galaxy.fps", "galaxy.streak_chance", "appearance.accent_color"}, fields)
}

func TestValidateSettingsJSON_Malformed(t *testing.T) {
	s, errs := ValidateSettingsJSON([]byte(`{galaxy: `))

	assert.Nil(t, s)
	require.Len(t, errs, 1)
	assert.Equal(t, "json", errs[0].Field)
}

func TestValidateSettingsJSON_Bindings(t *testing.T) {
	_, errs := ValidateSettingsJSON([]byte(`{"bindings": {"sin": "Ctrl-S", "launch": "x", "cos": "Hyper-Z"}}`))

	require.Len(t, errs, 2)
	assert.Equal(t, "bindings.cos", errs[0].Field)
	assert.Equal(t, "bindings.launch", errs[1].Field)
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	useTempConfigDir(t)

	s := DefaultSettings()
	s.Galaxy.Nebulae = 9
	s.Bindings = map[string]string{"quit": "Ctrl-X"}
	require.NoError(t, SaveSettings(s))

	loaded, errs := ReloadSettings()
	require.Empty(t, errs)
	assert.Equal(t, s, loaded)
}

func TestEnsureSettingsFile(t *testing.T) {
	useTempConfigDir(t)
	require.NoError(t, EnsureSettingsFile())
	_, err := os.Stat(SettingsFilePath())
	require.NoError(t, err)

	// An existing file is left alone
	writeSettings(t, `{"galaxy": {"fps": 12}}`)
	require.NoError(t, EnsureSettingsFile())
	assert.Equal(t, 12, LoadSettings().Galaxy.FPS)
}

func TestIsSettingsFile(t *testing.T) {
	dir := useTempConfigDir(t)
	assert.True(t, IsSettingsFile(filepath.Join(dir, "settings.json")))
	assert.False(t, IsSettingsFile(filepath.Join(dir, "other.json")))
}
