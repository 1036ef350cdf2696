package commands

import (
	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	"github.com/leapstack-labs/sqlframe/pkg/query"
	"github.com/spf13/cobra"
)

// HeadOptions holds options for the head command.
type HeadOptions struct {
	Format  string
	ShowSQL bool
}

// NewHeadCommand creates the head command.
func NewHeadCommand() *cobra.Command {
	opts := &HeadOptions{}

	cmd := &cobra.Command{
		Use:   "head <dataset>",
		Short: "Show the first rows of a dataset",
		Long: `Load a dataset and print its preview: the first rows of the declared
columns, in declared order.`,
		Example: `  sqlframe head acme/users
  sqlframe head acme/users --format json
  sqlframe head acme/users --show-sql`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDatasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHead(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Result format: table, json, csv, md (default follows --output)")
	cmd.Flags().BoolVar(&opts.ShowSQL, "show-sql", false, "Print the preview query to stderr")

	return cmd
}

func runHead(cmd *cobra.Command, path string, opts *HeadOptions) error {
	c := NewCommandContext(cmd)

	schema, err := c.Schema(path)
	if err != nil {
		return err
	}
	if opts.ShowSQL {
		_, _ = cmd.ErrOrStderr().Write([]byte(query.BuildPreview(schema).Text + "\n"))
	}

	vt, err := c.loaderFor(schema).Load(cmd.Context())
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = output.ResultFormat(c.Renderer.EffectiveMode())
	}
	return output.RenderResults(c.Renderer.Writer(), vt.Head(), format)
}
