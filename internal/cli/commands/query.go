package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
	Args   []string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <dataset> [SQL]",
		Short: "Run a read-only query against a dataset's backend",
		Long: `Run SQL against the backend a dataset lives in.

The statement is checked against the dataset dialect's read-only policy
before any connection is opened. Rejected statements never reach the backend.

SQL is taken from the arguments, the --input file, or stdin. When none is
given and stdin is a terminal, an interactive REPL starts.`,
		Example: `  # Execute SQL directly
  sqlframe query acme/users "SELECT count(*) FROM users"

  # Bind arguments
  sqlframe query acme/users "SELECT * FROM users WHERE email = ?" --arg alice@example.com

  # Read from a file, output CSV
  sqlframe query acme/users -i report.sql --format csv

  # Interactive mode
  sqlframe query acme/users`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeDatasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Result format: table, json, csv, md (default follows --output)")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	cmd.Flags().StringArrayVar(&opts.Args, "arg", nil, "Bind argument (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.ResultFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	c := NewCommandContext(cmd)

	sqlText, ok, err := readSQL(cmd, args[1:], opts.Input)
	if err != nil {
		return err
	}
	if !ok {
		return runREPL(cmd, c, args[0], opts.Format)
	}

	schema, err := c.Schema(args[0])
	if err != nil {
		return err
	}

	q := core.RawQuery(sqlText, schema.Dialect(), bindArgs(opts.Args)...).For(schema)
	result, err := c.Executor.Execute(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	format := opts.Format
	if format == "" {
		format = output.ResultFormat(c.Renderer.EffectiveMode())
	}
	return output.RenderResults(c.Renderer.Writer(), result, format)
}
