package main

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"pexelsdl/pkg/auth"
	"pexelsdl/pkg/config"
	"pexelsdl/pkg/logger"
	"pexelsdl/pkg/pipeline"
	"pexelsdl/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// errReported marks a failure whose message has already been printed
var errReported = errors.New("error already reported")

var (
	errCountNotInteger = errors.New("number_of_photos must be an integer")
	errCountTooSmall   = errors.New("number_of_photos must be at least 1")
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	configFile string
	logLevel   string
	noColor    bool
	quiet      bool
	keyFile    string
	keySource  string
	archiveDir string
	metadata   bool
}

// flagMap returns the flags the user actually set, keyed the way
// config.MergeCommandLineFlags expects
func (o *globalOptions) flagMap(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	set := cmd.Flags().Changed

	if set("log-level") {
		flags["log-level"] = o.logLevel
	}
	if set("no-color") {
		flags["no-color"] = o.noColor
	}
	if set("quiet") {
		flags["quiet"] = o.quiet
	}
	if set("key-file") {
		flags["key-file"] = o.keyFile
	}
	if set("key-source") {
		flags["key-source"] = o.keySource
	}
	if set("archive-dir") {
		flags["archive-dir"] = o.archiveDir
	}
	if set("metadata") {
		flags["metadata"] = o.metadata
	}

	return flags
}

// setup loads configuration and prepares terminal output and logging
func (o *globalOptions) setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configFile, o.flagMap(cmd))
	if err != nil {
		ui.PrintError("Failed to load configuration", err)
		return nil, errReported
	}

	ui.SetColorEnabled(cfg.UI.ColorEnabled)
	ui.SetQuietMode(cfg.UI.Quiet)

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err)
		return nil, errReported
	}

	return cfg, nil
}

// loadKey reads the API key, printing the user-facing reason on failure
func loadKey(cfg *config.Config) (auth.APIKey, error) {
	key, err := auth.NewLoader(&cfg.Pexels).Load()
	if err != nil {
		logger.WithError(err).WithField("source", cfg.Pexels.KeySource).Error("Failed to load API key")
		ui.PrintError(auth.Describe(err, cfg.Pexels.KeyFile))
		return "", errReported
	}
	return key, nil
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(2, 3)(cmd, args); err != nil {
		return err
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return errCountNotInteger
	}
	if count < 1 {
		return errCountTooSmall
	}
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "pexelsdl <query> <number_of_photos> [destination_path]",
		Short: "Download photos from Pexels and bundle them into a zip archive",
		Long: `pexelsdl searches the Pexels photo library, downloads the requested number
of matching images and packages them into a timestamped zip archive.

Images are saved to <destination_path>/<query-with-hyphens>/ as 1.<ext>, 2.<ext>, ...
and the archive is written to ./downloads/<timestamp>_<query_with_underscores>.zip.

Only the first page of search results is used, so at most 80 photos are
downloaded per run.`,
		Example: `  # Download 10 photos of cats into the current directory
  pexelsdl cats 10

  # Multi-word queries and a custom destination
  pexelsdl "mountain lake" 25 ~/Pictures

  # Read the key from PEXELSDL_API_KEY instead of api.key
  pexelsdl --key-source env forest 5`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		Args:    validateArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, args, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./.pexelsdl.yaml or ~/.config/pexelsdl/config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error, disabled)")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	pf.StringVar(&opts.keyFile, "key-file", "api.key", "file containing the Pexels API key")
	pf.StringVar(&opts.keySource, "key-source", config.KeySourceFile, "where to read the API key from (file, env, keyring)")
	pf.StringVar(&opts.archiveDir, "archive-dir", "downloads", "directory for zip archives")
	pf.BoolVar(&opts.metadata, "metadata", false, "write an attribution sidecar next to the images")

	rootCmd.SetVersionTemplate(`pexelsdl {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newAuthCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func runDownload(cmd *cobra.Command, args []string, opts *globalOptions) error {
	// Arguments are valid from here on; later failures print their own message
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	query := args[0]
	count, _ := strconv.Atoi(args[1])

	cfg, err := opts.setup(cmd)
	if err != nil {
		return err
	}
	if len(args) == 3 {
		cfg.Output.BaseDirectory = args[2]
	}

	key, err := loadKey(cfg)
	if err != nil {
		return err
	}

	log := logger.GetLogger()
	log.InfoWithFields("Starting download", map[string]interface{}{
		"query":       query,
		"count":       count,
		"destination": cfg.Output.BaseDirectory,
	})

	report, err := pipeline.New(cfg, key, log).Run(query, count)
	if err != nil {
		for _, line := range searchDiagnostics(err) {
			ui.PrintError(line)
		}
		return errReported
	}

	printReport(report)
	return nil
}

// printReport prints the final status line of a run
func printReport(r *pipeline.Report) {
	switch r.Outcome {
	case pipeline.OutcomeArchived:
		ui.PrintSuccess("\nAll images successfully packaged into: " + r.ArchivePath)
	case pipeline.OutcomeArchiveFailed:
		ui.PrintWarning("\nFailed to create zip archive, but images were downloaded successfully.")
	case pipeline.OutcomeNothingDownloaded:
		ui.PrintWarning("\nNo images were downloaded, skipping zip creation.")
	}

	if r.MetadataPath != "" {
		ui.PrintDim("Metadata written to " + r.MetadataPath)
	}
}

// execute runs the command line and returns the process exit code
func execute(args []string) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
