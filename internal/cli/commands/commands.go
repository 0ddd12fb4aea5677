package commands

import (
	"tfa/internal/cache"
	"tfa/internal/cli"
	"tfa/internal/config"
	"tfa/internal/diff"
	"tfa/internal/parser"
	"tfa/internal/storage"
	"tfa/internal/travis"
	"tfa/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Analyze  *AnalyzeCommand
	Jobs     *JobsCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	client := travis.NewClient()
	logCache := cache.New(cfg)
	pytestParser := parser.NewPytestParser()
	grepper := parser.NewGrepper()
	differ := diff.NewDiffer(cfg)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	viewer := ui.NewFailureViewer(cfg)

	return &Commands{
		Analyze:  NewAnalyzeCommand(cfg, client, logCache, pytestParser, grepper, differ, jsonStorage, formatter),
		Jobs:     NewJobsCommand(cfg, client, logCache, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// The root command carries the analyze pipeline: positional build
	// reference plus analysis flags.
	rootCmd.Args = cobra.ExactArgs(1)
	rootCmd.RunE = c.Analyze.Execute
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		return nil
	}
	rootCmd.Flags().StringVar(&flags.TestPrefix, "test-prefix", config.DefaultTestPrefix, "Relative path prefix shown in py.test verbose output")
	rootCmd.Flags().BoolVar(&flags.Diff, "diff", false, "Diff divergent failure logs across jobs")
	rootCmd.Flags().BoolVar(&flags.NoCount, "no-count", false, "Do not count failed results from different jobs")
	rootCmd.Flags().StringVar(&flags.DiffTool, "diff-tool", config.DefaultDiffTool, "Use this diff tool")
	rootCmd.Flags().IntVar(&flags.MaxDiff, "max-diff", 0, "Maximum number of distinct log variants to diff per test (0 = no limit)")
	rootCmd.Flags().BoolVar(&flags.Skipped, "skipped", false, "Also count skipped tests")
	rootCmd.PersistentFlags().BoolVar(&flags.Verbose, "verbose", true, "Echo matching lines and per-job banners while processing")
	rootCmd.PersistentFlags().StringVar(&flags.SavePath, "save-path", config.DefaultSavePath, "Directory for cached job logs and analysis results")

	// Jobs command
	jobsCmd := &cobra.Command{
		Use:   "jobs <build-url>",
		Short: "List the jobs of a build",
		Long:  "Fetch build metadata and list every job with its id, state and environment",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Jobs.Execute,
	}
	rootCmd.AddCommand(jobsCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View the last run's failures interactively",
		Long:  "Display the failing tests recorded by the last analysis in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
