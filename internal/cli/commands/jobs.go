package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tfa/internal/cache"
	"tfa/internal/config"
	"tfa/internal/travis"
	"tfa/internal/ui"
)

// JobsCommand handles the jobs command
type JobsCommand struct {
	config    *config.Config
	client    *travis.Client
	cache     *cache.LogCache
	formatter *ui.Formatter
}

// NewJobsCommand creates a new JobsCommand
func NewJobsCommand(cfg *config.Config, client *travis.Client, logCache *cache.LogCache, formatter *ui.Formatter) *JobsCommand {
	return &JobsCommand{
		config:    cfg,
		client:    client,
		cache:     logCache,
		formatter: formatter,
	}
}

// Execute runs the command
func (jc *JobsCommand) Execute(cmd *cobra.Command, args []string) error {
	buildURL := travis.NormalizeBuildURL(args[0])
	build, err := jc.client.Build(buildURL)
	if err != nil {
		return fmt.Errorf("fetch build %s: %w", buildURL, err)
	}

	cachedIDs, err := jc.cache.List()
	if err != nil {
		color.Red("ERROR: failed to list cached logs: %v", err)
	}
	jc.formatter.PrintJobList(build, cachedIDs)
	return nil
}
