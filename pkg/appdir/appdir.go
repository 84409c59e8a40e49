// Package appdir resolves where unpack keeps its files.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "unpack"

// Dirs holds the application's directories
type Dirs struct {
	RootPath   string // Data directory
	FilesPath  string // Default destination for unpacked assets
	ConfigPath string // config.yaml
}

// New resolves XDG-compliant paths
func New() (*Dirs, error) {
	rootPath, err := dataRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to determine data directory: %w", err)
	}
	configPath, err := configFile()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &Dirs{
		RootPath:   rootPath,
		FilesPath:  filepath.Join(rootPath, "files"),
		ConfigPath: configPath,
	}, nil
}

// dataRoot follows XDG on Unix and uses AppData on Windows
func dataRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", appName), nil
}

func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName+"-config", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Initialize creates the data directories
func (d *Dirs) Initialize() error {
	for _, dir := range []string{d.RootPath, d.FilesPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Exists checks if the data directory has been initialized
func (d *Dirs) Exists() bool {
	info, err := os.Stat(d.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}
