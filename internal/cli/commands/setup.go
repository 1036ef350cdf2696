package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/sqlframe/internal/cli/config"
	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqlframe/internal/config"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/loader"
	"github.com/leapstack-labs/sqlframe/pkg/query"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Executor *query.Executor
}

// NewCommandContext creates a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
		Executor: query.NewExecutor(query.WithLogger(logger)),
	}
}

// getConfig returns the current configuration, or defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		DatasetsDir:  config.DefaultDatasetsDir,
		OutputFormat: config.DefaultOutput,
	}
}

// Dataset loads the description at path.
func (c *CommandContext) Dataset(path string) (*intconfig.Dataset, error) {
	return intconfig.LoadDataset(c.Cfg.DatasetsDir, path)
}

// Schema loads the description at path and binds it to its resolved connection.
func (c *CommandContext) Schema(path string) (*core.Schema, error) {
	ds, err := c.Dataset(path)
	if err != nil {
		return nil, err
	}
	return c.schemaFor(ds)
}

func (c *CommandContext) schemaFor(ds *intconfig.Dataset) (*core.Schema, error) {
	conn, err := c.Cfg.ConnectionFor(ds)
	if err != nil {
		return nil, err
	}
	return ds.SchemaWith(conn)
}

// Load loads the dataset at path and takes its preview.
func (c *CommandContext) Load(ctx context.Context, path string) (*loader.VirtualTable, error) {
	schema, err := c.Schema(path)
	if err != nil {
		return nil, err
	}
	return c.loaderFor(schema).Load(ctx)
}

func (c *CommandContext) loaderFor(schema *core.Schema) *loader.SQLLoader {
	return loader.NewSQLLoader(schema,
		loader.WithExecutor(c.Executor),
		loader.WithLogger(c.Logger))
}

// completeDatasets offers dataset paths for shell completion.
func completeDatasets(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	paths, err := intconfig.ListDatasets(getConfig().DatasetsDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return paths, cobra.ShellCompDirectiveNoFileComp
}
