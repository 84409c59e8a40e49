package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/unpack-cli/internal/core/services"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up unpack and unpack assets for the first time",
	Long: `Create the unpack data directory, write a default configuration file and
unpack the matching assets.

The data directory lives at ~/.local/share/unpack/ (or $XDG_DATA_HOME/unpack):
  - files/      : Unpacked assets (unless 'destination' is configured)
  - config.yaml : Lives under $XDG_CONFIG_HOME/unpack/

Running init again only reports where things are.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check if already initialized
	if appDirs.Exists() {
		fmt.Println(ui.FormatWarning("Already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + appDirs.RootPath))
		fmt.Println(ui.FormatMuted("Run 'unpack run' to unpack assets again"))
		return nil
	}

	fmt.Println(ui.FormatRocket("Initializing unpack..."))
	fmt.Println()

	if err := appDirs.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to create data directory"))
		return err
	}

	// Create default config
	if err := createDefaultConfig(configPath); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		// Don't fail - config is optional
	} else {
		fmt.Println(ui.FormatSuccess("Configuration (" + configPath + ") created"))
	}

	resp, err := unpackService.FirstRun(getContext(), services.UnpackRequest{
		Extension: appConfig.Extension,
		Force:     !appConfig.SkipUnchanged,
	})
	if err != nil {
		return err
	}
	printUnpackResponse(resp)

	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Data", appDirs.RootPath))
	fmt.Println(ui.RenderKeyValue("Destination", assetDest.Root()))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. See what was unpacked: unpack list"))
	fmt.Println(ui.FormatMuted("  2. Get a file's path: unpack path <name>"))
	fmt.Println(ui.FormatMuted("  3. Change the extension or destination: unpack config"))

	return nil
}

const defaultConfigContent = `# unpack configuration
# This file is optional - all settings have sensible defaults

# Only assets whose name ends with this suffix are unpacked.
# An empty string unpacks everything.
# extension: ".ovpn"

# Where assets are unpacked (default: <data dir>/files)
# destination: ""

# Read assets from this directory instead of the bundled ones
# source: ""

# Copy buffer in bytes
# buffer_size: 1024

# Leave destination files alone when they already match
# skip_unchanged: true

# debug, info, warn or error
# log_level: "info"
# log_development: false

# Quiet period before 'unpack watch' re-runs
# watch_debounce_ms: 500

# auto, dark or light
# color_theme: "auto"
`

// createDefaultConfig writes the commented config file unless one exists
func createDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigContent), 0644)
}
