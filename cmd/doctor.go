package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/internal/core/services"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your unpack setup",
	Long: `Diagnose issues with your unpack setup.

Checks for:
  - Data and destination directories
  - Write access to the destination
  - Configuration file existence
  - A readable manifest
  - Matching assets in the store`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🏥 unpack doctor"))
	fmt.Println()

	// 1. Directories
	checkStep("Data Directory", func() error {
		if !appDirs.Exists() {
			return fmt.Errorf("not found at %s (run 'unpack init')", appDirs.RootPath)
		}
		return nil
	})

	checkStep("Destination Directory", func() error {
		info, err := os.Stat(assetDest.Root())
		if os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (created on next run)", assetDest.Root())
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", assetDest.Root())
		}
		return nil
	})

	checkStep("Destination Writable", func() error {
		if _, err := os.Stat(assetDest.Root()); os.IsNotExist(err) {
			return errors.New("skipped (directory missing)")
		}
		f, err := os.CreateTemp(assetDest.Root(), ".doctor.*.tmp")
		if err != nil {
			return err
		}
		name := f.Name()
		f.Close()
		return os.Remove(name)
	})

	// 2. Config
	checkStep("Configuration File", func() error {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (using defaults)", configPath)
		}
		return nil
	})

	checkStep("Manifest", func() error {
		m, err := manifestRepo.Load()
		if err != nil {
			return err
		}
		if !m.HasRun() {
			return errors.New("no runs recorded yet")
		}
		return nil
	})

	// 3. Store
	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking " + assetSource.Describe() + "..."))

	checkStep("Matching Assets", func() error {
		resp, err := listService.Execute(getContext(), services.ListRequest{Extension: appConfig.Extension})
		if err != nil {
			return err
		}
		if resp.Matching == 0 {
			return fmt.Errorf("none of %d assets end with %q", resp.Total, appConfig.Extension)
		}

		modified := countStatus(resp.Assets, domain.StatusModified)
		if modified > 0 {
			return fmt.Errorf("%d unpacked asset(s) changed or removed since the last run", modified)
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
