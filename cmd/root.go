package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamal-hamza/unpack-cli/internal/adapters/destination"
	"github.com/kamal-hamza/unpack-cli/internal/adapters/repository"
	"github.com/kamal-hamza/unpack-cli/internal/adapters/source"
	"github.com/kamal-hamza/unpack-cli/internal/core/services"
	"github.com/kamal-hamza/unpack-cli/pkg/appdir"
	"github.com/kamal-hamza/unpack-cli/pkg/config"
	"github.com/kamal-hamza/unpack-cli/pkg/logging"
	"github.com/kamal-hamza/unpack-cli/pkg/ui"
)

var (
	// Application directories and configuration
	appDirs    *appdir.Dirs
	appConfig  *config.Config
	configPath string
	logger     *zap.Logger

	// Adapters
	assetSource  *source.FSSource
	assetDest    *destination.Dir
	manifestRepo *repository.FileManifestRepository

	// Services
	unpackService *services.UnpackService
	listService   *services.ListService

	// Global flags
	flagConfig  string
	flagExt     string
	flagDest    string
	flagSource  string
	flagVerbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "unpack",
	Short: "Unpack bundled assets into a writable directory",
	Long: ui.StyleTitle.Render("unpack") + " - bundled asset extractor\n\n" +
		"Copies every bundled asset whose name ends with the configured extension\n" +
		"into the destination directory. Running without a subcommand is the same\n" +
		"as 'unpack run'.",
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE:          runUnpack,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: $XDG_CONFIG_HOME/unpack/config.yaml)")
	pf.StringVarP(&flagExt, "ext", "e", "", "Only unpack assets ending with this extension")
	pf.StringVarP(&flagDest, "dest", "d", "", "Destination directory")
	pf.StringVarP(&flagSource, "source", "s", "", "Read assets from this directory instead of the bundle")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	addRunFlags(rootCmd.Flags())
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for version
	if cmd.Name() == "version" {
		return nil
	}

	d, err := appdir.New()
	if err != nil {
		return fmt.Errorf("failed to resolve application directories: %w", err)
	}
	appDirs = d

	configPath = appDirs.ConfigPath
	if flagConfig != "" {
		configPath = flagConfig
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)
	appConfig = cfg
	ui.SetTheme(cfg.ColorTheme)

	level := cfg.LogLevel
	if flagVerbose {
		level = "debug"
	}
	logger, err = logging.New(logging.Options{Level: level, Development: cfg.LogDevelopment})
	if err != nil {
		return err
	}

	// Initialize adapters
	if dir := cfg.ResolveSource(); dir != "" {
		assetSource = source.Dir(dir)
	} else {
		assetSource = source.Bundled()
	}
	assetDest = destination.NewDir(cfg.ResolveDestination(appDirs.FilesPath))
	manifestRepo = repository.NewFileManifestRepository(assetDest.Root())

	// Initialize services
	unpackService = services.NewUnpackService(assetSource, assetDest, manifestRepo, logger, cfg.BufferSize)
	listService = services.NewListService(assetSource, assetDest, manifestRepo)

	logger.Debug("Initialized",
		zap.String("config", configPath),
		zap.String("source", assetSource.Describe()),
		zap.String("destination", assetDest.Root()),
		zap.String("extension", cfg.Extension),
	)

	return nil
}

// applyFlagOverrides lets command line flags win over the config file
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("ext") {
		cfg.Extension = flagExt
	}
	if flags.Changed("dest") {
		cfg.Destination = flagDest
	}
	if flags.Changed("source") {
		cfg.Source = flagSource
	}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
