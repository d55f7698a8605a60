// Package config locates the configuration directory and loads the
// settings file and key bindings.
package config

import (
	"errors"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// ConfigDir is the directory settings.json is read from
var ConfigDir string

// FindConfigDir resolves the configuration directory without creating it:
// $STARCALC_CONFIG_HOME, then $XDG_CONFIG_HOME/starcalc, then ~/.config/starcalc
func FindConfigDir() (string, error) {
	if dir := os.Getenv("STARCALC_CONFIG_HOME"); dir != "" {
		return dir, nil
	}

	xdgHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgHome == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "", errors.New("Error finding your home directory\nCan't load config files: " + err.Error())
		}
		xdgHome = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgHome, "starcalc"), nil
}

// InitConfigDir sets ConfigDir and creates it if needed. A flagConfigDir
// that exists wins over the environment; one that doesn't is reported and
// ignored.
func InitConfigDir(flagConfigDir string) error {
	var e error

	dir, err := FindConfigDir()
	if err != nil {
		return err
	}
	ConfigDir = dir

	if len(flagConfigDir) > 0 {
		if _, err := os.Stat(flagConfigDir); os.IsNotExist(err) {
			e = errors.New("Error: " + flagConfigDir + " does not exist. Defaulting to " + ConfigDir + ".")
		} else {
			ConfigDir = flagConfigDir
			return nil
		}
	}

	if err := os.MkdirAll(ConfigDir, os.ModePerm); err != nil {
		return errors.New("Error creating configuration directory: " + err.Error())
	}

	return e
}
