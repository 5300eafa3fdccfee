package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "esdveg"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/esdveg by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/esdveg by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/esdveg/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/esdveg/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// PlantsCachePath returns the path where a downloaded species table is
// stored. Returns ~/.cache/esdveg/plants.txt by default.
func PlantsCachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "plants.txt")
}
