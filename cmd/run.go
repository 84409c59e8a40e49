package cmd

import (
	"errors"
	"fmt"
	"time"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/internal/core/services"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

var (
	runForce bool
	runPick  bool
	runOnce  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Unpack matching assets into the destination",
	Long: `Copy every asset whose name ends with the configured extension into the
destination directory.

Assets that fail to copy are reported and skipped; the rest are still
unpacked. Files already identical in the destination are left untouched
unless --force is given.

Examples:
  unpack run                    # Bundled assets, configured extension
  unpack run --ext .conf        # Different extension
  unpack run --source ./assets  # Assets from a directory
  unpack run --pick             # Choose which assets to unpack
  unpack run --once             # Only if nothing has been unpacked yet`,
	Args: cobra.NoArgs,
	RunE: runUnpack,
}

func init() {
	addRunFlags(runCmd.Flags())
}

// addRunFlags registers run's flags. The root command gets them too, since
// running it bare is the same as 'unpack run'.
func addRunFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&runForce, "force", "f", false, "Rewrite assets even if unchanged")
	fs.BoolVarP(&runPick, "pick", "p", false, "Interactively choose assets to unpack")
	fs.BoolVar(&runOnce, "once", false, "Skip if a previous run already unpacked assets")
}

func runUnpack(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req := services.UnpackRequest{
		Extension: appConfig.Extension,
		Force:     runForce || !appConfig.SkipUnchanged,
	}

	if runPick {
		selected, err := pickAssets()
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			fmt.Println(ui.FormatInfo("Nothing selected."))
			return nil
		}
		req.Only = selected
	}

	fmt.Println(ui.FormatPackage(fmt.Sprintf("Unpacking %s assets from %s...", describeExtension(req.Extension), assetSource.Describe())))

	var (
		resp *services.UnpackResponse
		err  error
	)
	if runOnce {
		resp, err = unpackService.FirstRun(ctx, req)
	} else {
		resp, err = unpackService.Execute(ctx, req)
	}
	if err != nil {
		return err
	}

	printUnpackResponse(resp)
	return nil
}

// pickAssets lets the user choose among matching assets
func pickAssets() ([]string, error) {
	resp, err := listService.Execute(getContext(), services.ListRequest{Extension: appConfig.Extension})
	if err != nil {
		return nil, err
	}
	if len(resp.Assets) == 0 {
		return nil, nil
	}

	idxs, err := fuzzyfinder.FindMulti(
		resp.Assets,
		func(i int) string { return resp.Assets[i].Name },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			a := resp.Assets[i]
			preview := fmt.Sprintf("Asset: %s\nSize: %s\nStatus: %s\nDestination: %s",
				a.Name, ui.FormatBytes(a.Size), a.Status, a.Path)
			if !a.UnpackedAt.IsZero() {
				preview += "\nUnpacked: " + a.UnpackedAt.Format("Jan 02, 2006 15:04")
			}
			return preview
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, err
	}

	selected := make([]string, 0, len(idxs))
	for _, i := range idxs {
		selected = append(selected, resp.Assets[i].Name)
	}
	return selected, nil
}

// printUnpackResponse renders the per-asset lines and a summary
func printUnpackResponse(resp *services.UnpackResponse) {
	if resp.Skipped {
		fmt.Println(ui.FormatInfo("Assets were already unpacked, skipping (use 'unpack run' to unpack again)"))
		return
	}

	if resp.ListErr != nil {
		fmt.Println(ui.FormatWarning("Could not list assets: " + resp.ListErr.Error()))
		return
	}

	if len(resp.Results) == 0 {
		fmt.Println(ui.FormatWarning("No matching assets found."))
		if resp.Ignored > 0 {
			fmt.Println(ui.FormatMuted(fmt.Sprintf("%d asset(s) did not match the extension", resp.Ignored)))
		}
		return
	}

	for _, res := range resp.Results {
		switch res.Outcome {
		case domain.OutcomeWritten:
			fmt.Println(ui.FormatSuccess(fmt.Sprintf("%s → %s (%s)", res.Name, res.Path, ui.FormatBytes(res.Bytes))))
		case domain.OutcomeUnchanged:
			fmt.Println(ui.FormatUnchanged(res.Name + " (unchanged)"))
		case domain.OutcomeFailed:
			fmt.Println(ui.FormatError(res.Name + ": " + res.Err.Error()))
		}
	}

	fmt.Println()
	summary := fmt.Sprintf("%d written, %d unchanged, %d failed, %d ignored in %s",
		len(resp.Written()), len(resp.Unchanged()), len(resp.Failed()), resp.Ignored,
		resp.Duration.Round(time.Millisecond))
	if len(resp.Failed()) > 0 {
		fmt.Println(ui.FormatWarning(summary))
	} else {
		fmt.Println(ui.FormatMuted(summary))
	}
}

func describeExtension(ext string) string {
	if ext == "" {
		return "all"
	}
	return ext
}
