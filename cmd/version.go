package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

// Version information - these can be set during build with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display the current version of unpack along with build information.`,
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Println(ui.StyleTitle.Render("unpack") + " - bundled asset extractor")
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Version", Version))
	fmt.Println(ui.RenderKeyValue("Commit", GitCommit))
	fmt.Println(ui.RenderKeyValue("Build Date", BuildDate))
}
