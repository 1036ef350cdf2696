package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	intconfig "github.com/leapstack-labs/sqlframe/internal/config"
	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// IntrospectOptions holds options for the introspect command.
type IntrospectOptions struct {
	ConnectionRef string
	Path          string
	DSN           string
	Dataset       string
	Force         bool
}

// NewIntrospectCommand creates the introspect command.
func NewIntrospectCommand() *cobra.Command {
	opts := &IntrospectOptions{}

	cmd := &cobra.Command{
		Use:   "introspect <dialect> <table>",
		Short: "Generate a dataset description from a live table",
		Long: `Read a table's columns from the database and print a dataset
description (schema.yaml) for it.

The connection is the project default, or the named connection given with
--connection. --path and --dsn override it. With --dataset the description
is written to datasets/<org>/<name>/schema.yaml instead of stdout.`,
		Example: `  sqlframe introspect postgres public.users --connection prod
  sqlframe introspect sqlite users --path app.db --dataset acme/users`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return adapter.ListAdapters(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntrospect(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConnectionRef, "connection", "", "Named connection from sqlframe.yaml")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Database file (duckdb, sqlite)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "Driver DSN")
	cmd.Flags().StringVar(&opts.Dataset, "dataset", "", "Write the description to this dataset path (org/name)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing description")

	return cmd
}

func runIntrospect(cmd *cobra.Command, dialectName, table string, opts *IntrospectOptions) error {
	c := NewCommandContext(cmd)
	dialectName = strings.ToLower(dialectName)

	src := &intconfig.Dataset{
		Source: intconfig.SourceConfig{
			Type:          dialectName,
			Table:         table,
			ConnectionRef: opts.ConnectionRef,
		},
	}
	if opts.Path != "" || opts.DSN != "" {
		src.Source.Connection = &core.ConnectionConfig{Path: opts.Path, DSN: opts.DSN}
	}
	conn, err := c.Cfg.ConnectionFor(src)
	if err != nil {
		return err
	}

	meta, err := introspectTable(cmd.Context(), c.Logger, dialectName, conn, table)
	if err != nil {
		return err
	}

	ds := datasetFromMetadata(dialectName, table, opts.ConnectionRef, meta)

	if opts.Dataset == "" {
		return c.Renderer.YAML(ds)
	}
	return writeDataset(c, opts.Dataset, ds, opts.Force)
}

func introspectTable(ctx context.Context, logger *slog.Logger, dialectName string, conn core.ConnectionConfig, table string) (*core.TableMetadata, error) {
	a, err := adapter.NewAdapter(dialectName)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, conn); err != nil {
		return nil, err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("failed to close connection", slog.Any("error", err))
		}
	}()

	meta, err := a.GetTableMetadata(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	return meta, nil
}

func datasetFromMetadata(dialectName, table, ref string, meta *core.TableMetadata) *intconfig.Dataset {
	ds := &intconfig.Dataset{
		Name: meta.Name,
		Source: intconfig.SourceConfig{
			Type:          dialectName,
			Table:         table,
			ConnectionRef: ref,
		},
		Columns: make([]intconfig.ColumnConfig, len(meta.Columns)),
	}
	for i, col := range meta.Columns {
		ds.Columns[i] = intconfig.ColumnConfig{
			Name: col.Name,
			Type: strings.ToLower(col.Type),
		}
	}
	return ds
}

func writeDataset(c *CommandContext, datasetPath string, ds *intconfig.Dataset, force bool) error {
	if err := intconfig.ValidateDatasetPath(datasetPath); err != nil {
		return err
	}

	dir := filepath.Join(c.Cfg.DatasetsDir, filepath.FromSlash(datasetPath))
	target := filepath.Join(dir, intconfig.DatasetFileName)
	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("%s already exists\nHint: use --force to overwrite", target)
	}

	data, err := yaml.Marshal(ds)
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := os.WriteFile(target, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	c.Renderer.Success(fmt.Sprintf("Wrote %s (%d columns)", target, len(ds.Columns)))
	return nil
}
