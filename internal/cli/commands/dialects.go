package commands

import (
	"strconv"

	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List known SQL dialects and their backends",
		Long: `List every registered dialect. Dialects without a linked backend can
still be validated and formatted, but queries against them fail with a
backend-unavailable error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDialects(cmd)
		},
	}
}

func runDialects(cmd *cobra.Command) error {
	r := NewCommandContext(cmd).Renderer

	infos := dialectInfos()
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(infos)
	}

	rs := &core.ResultSet{Columns: []string{"dialect", "backend", "default_schema", "placeholder"}}
	for _, info := range infos {
		name := info.Name
		if info.Default {
			name += " (default)"
		}
		rs.Rows = append(rs.Rows, []any{name, strconv.FormatBool(info.Backend), info.DefaultSchema, info.Placeholder})
	}
	return output.RenderResults(r.Writer(), rs, output.ResultFormat(r.EffectiveMode()))
}

func dialectInfos() []output.DialectInfo {
	def := dialect.Default()
	names := dialect.List()
	infos := make([]output.DialectInfo, 0, len(names))
	for _, name := range names {
		d, ok := dialect.Get(name)
		if !ok {
			continue
		}
		infos = append(infos, output.DialectInfo{
			Name:          name,
			Backend:       adapter.IsRegistered(name),
			DefaultSchema: d.DefaultSchema,
			Placeholder:   d.FormatPlaceholder(1),
			Default:       def != nil && def.Name == d.Name,
		})
	}
	return infos
}
