package cmd

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

var pathNoCopy bool

var pathCmd = &cobra.Command{
	Use:   "path <asset>",
	Short: "Print where an asset was unpacked",
	Long: `Print the destination path of an unpacked asset and copy it to the clipboard.

Examples:
  unpack path example-udp.ovpn
  unpack path example-udp.ovpn --no-copy`,
	Args: cobra.ExactArgs(1),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().BoolVar(&pathNoCopy, "no-copy", false, "Don't copy the path to the clipboard")
}

func runPath(cmd *cobra.Command, args []string) error {
	name := args[0]

	if _, err := manifestRepo.Get(getContext(), name); err != nil {
		if errors.Is(err, domain.ErrNotUnpacked) {
			return fmt.Errorf("%s has not been unpacked (run 'unpack run' first)", name)
		}
		return err
	}

	path := assetDest.Path(name)
	fmt.Println(path)

	if pathNoCopy {
		return nil
	}

	if err := clipboard.WriteAll(path); err != nil {
		fmt.Println(ui.FormatMuted("(could not copy to clipboard: " + err.Error() + ")"))
		return nil
	}
	fmt.Println(ui.FormatMuted("Copied to clipboard"))
	return nil
}
