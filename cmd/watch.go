package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/unpack-cli/internal/adapters/watcher"
	"github.com/kamal-hamza/unpack-cli/internal/core/services"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

var watchQuiet bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Unpack again whenever the source directory changes",
	Long: `Watch an on-disk asset directory and unpack matching assets whenever one
is created or rewritten.

Requires a source directory (--source or 'source' in the config); the bundled
assets never change. Changes are debounced by 'watch_debounce_ms'.

Use --quiet to suppress per-run output.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress unpack output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := appConfig.ResolveSource()
	if dir == "" {
		return errors.New("watch needs a source directory (use --source or set 'source' in the config)")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("source directory not found: %s", dir)
	}

	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := services.UnpackRequest{
		Extension: appConfig.Extension,
		Force:     !appConfig.SkipUnchanged,
	}

	if !watchQuiet {
		fmt.Println(ui.FormatRocket("Watching " + dir + " for " + describeExtension(req.Extension) + " assets..."))
		fmt.Println(ui.FormatMuted("Destination: " + assetDest.Root()))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Bring the destination up to date before waiting for changes
	if err := watchUnpack(ctx, req); err != nil {
		return nil
	}

	w := watcher.New(dir, req.Extension,
		time.Duration(appConfig.WatchDebounceMS)*time.Millisecond,
		func(ctx context.Context, changed []string) {
			if !watchQuiet {
				fmt.Println(ui.FormatInfo("Changes detected:"))
				fmt.Print(ui.RenderSimpleList(changed))
			}
			_ = watchUnpack(ctx, req)
		},
		logger,
	)

	if err := w.Run(ctx); err != nil {
		return err
	}

	if !watchQuiet {
		fmt.Println()
		fmt.Println(ui.FormatMuted("Watcher stopped"))
	}
	return nil
}

// watchUnpack runs one unpack pass. It returns an error only on cancellation.
func watchUnpack(ctx context.Context, req services.UnpackRequest) error {
	resp, err := unpackService.Execute(ctx, req)
	if err != nil {
		return err
	}
	if !watchQuiet {
		printUnpackResponse(resp)
		fmt.Println()
	}
	return nil
}
