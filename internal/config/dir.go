// Package config loads dayone-export settings from a YAML file and
// DAYONE_EXPORT_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the configuration directory and file.
const AppName = "dayone-export"

// Dir returns the dayone-export configuration directory.
//
// Resolution:
//   - $DAYONE_EXPORT_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/dayone-export if set (respects XDG on any platform)
//   - %AppData%/dayone-export on Windows
//   - ~/.config/dayone-export on macOS and Linux
func Dir() string {
	if dir := os.Getenv("DAYONE_EXPORT_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}
