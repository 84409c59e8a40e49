package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/internal/core/services"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

var listAll bool

// listNameWidth is the asset column width; longer names are truncated
const listNameWidth = 30

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List assets and whether they have been unpacked",
	Aliases: []string{"ls"},
	Long: `List the assets in the store in a table format.

Status is one of:
  pending   - matches the extension but hasn't been unpacked
  unpacked  - the destination copy matches what was written
  modified  - the destination copy was changed or removed
  ignored   - doesn't match the extension (only with --all)

Examples:
  unpack list
  unpack list --all
  unpack list --ext .crt`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include assets that don't match the extension")
}

func runList(cmd *cobra.Command, args []string) error {
	req := services.ListRequest{
		Extension: appConfig.Extension,
		All:       listAll,
	}

	resp, err := listService.Execute(getContext(), req)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to list assets"))
		return err
	}

	if len(resp.Assets) == 0 {
		if resp.Total == 0 {
			fmt.Println(ui.FormatWarning("No assets found in " + assetSource.Describe()))
		} else {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("No assets ending with %q", appConfig.Extension)))
			fmt.Println(ui.FormatInfo("Show everything with: unpack list --all"))
		}
		return nil
	}

	fmt.Println(ui.FormatTitle("Assets (" + assetSource.Describe() + ")"))
	fmt.Println()

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Asset", Width: listNameWidth, Align: "left"},
		{Header: "Size", Width: 8, Align: "right"},
		{Header: "Status", Width: 9, Align: "left"},
		{Header: "Unpacked", Width: 17, Align: "left"},
	})

	for _, a := range resp.Assets {
		table.AddRow(listRow(a))
	}

	fmt.Print(table.Render())
	fmt.Println()

	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d assets, %d matching %s", resp.Total, resp.Matching, describeExtension(appConfig.Extension))))
	fmt.Println(ui.FormatMuted("Destination: " + assetDest.Root()))
	if pending := countStatus(resp.Assets, domain.StatusPending); pending > 0 {
		fmt.Println(ui.FormatInfo(fmt.Sprintf("%d pending, run 'unpack run' to unpack them", pending)))
	}

	return nil
}

// listRow renders one asset as table cells
func listRow(a services.ListedAsset) []string {
	unpacked := "-"
	if !a.UnpackedAt.IsZero() {
		unpacked = a.UnpackedAt.Local().Format("2006-01-02 15:04")
	}
	return []string{
		truncate(a.Name, listNameWidth),
		ui.FormatBytes(a.Size),
		string(a.Status),
		unpacked,
	}
}

func countStatus(assets []services.ListedAsset, status domain.AssetStatus) int {
	n := 0
	for _, a := range assets {
		if a.Status == status {
			n++
		}
	}
	return n
}
