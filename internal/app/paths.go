// Package app provides the application initialization and wiring.
package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppName names the config file, data directory and telemetry service.
const AppName = "layerkit"

// DefaultDataDir returns the default data directory path.
// Uses ~/.layerkit for user installations, /var/lib/layerkit as fallback.
func DefaultDataDir() string {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, "."+AppName)
	}
	return filepath.Join("/var/lib", AppName)
}

// DefaultWorkspaceDir returns the parent directory of per-build workspaces.
func DefaultWorkspaceDir() string {
	return filepath.Join(os.TempDir(), AppName)
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: layerkit.toml
// Search paths (in order): /etc/layerkit, ~/.config/layerkit, current directory
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.SetConfigName(AppName)
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join("/etc", AppName))
	v.AddConfigPath(filepath.Join("$HOME", ".config", AppName))
	v.AddConfigPath(".")
}
