package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/unpack-cli/pkg/config"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

var configReset bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the unpack configuration file",
	Long: `Open the configuration file in $EDITOR.

The file is created with commented defaults if it doesn't exist yet.
Use --reset to overwrite it with the default settings instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configReset {
			if err := resetConfig(configPath); err != nil {
				return err
			}
			fmt.Println(ui.FormatSuccess("Configuration reset: " + configPath))
			return nil
		}

		if err := createDefaultConfig(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}

		fmt.Println(ui.FormatInfo("Opening config: " + configPath))
		return OpenEditor(configPath)
	},
}

func init() {
	configCmd.Flags().BoolVar(&configReset, "reset", false, "Overwrite the config file with the defaults")
}

// resetConfig replaces the file at path with the default settings
func resetConfig(path string) error {
	return config.DefaultConfig().Save(path)
}
