package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqlframe/internal/config"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/spf13/cobra"
)

// NewDatasetsCommand creates the datasets command.
func NewDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ls"},
		Short:   "List the datasets in the project",
		Long: `List every dataset under the datasets directory (datasets/<org>/<name>/schema.yaml).

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDatasets(cmd)
		},
	}
}

func runDatasets(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	r := c.Renderer

	paths, err := intconfig.ListDatasets(c.Cfg.DatasetsDir)
	if err != nil {
		return err
	}

	infos := make([]output.DatasetInfo, 0, len(paths))
	for _, p := range paths {
		ds, err := c.Dataset(p)
		if err != nil {
			r.Warning(fmt.Sprintf("skipping %s: %v", p, err))
			continue
		}
		infos = append(infos, datasetInfo(ds))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.DatasetList{Datasets: infos, Total: len(infos)})
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Datasets (%d total)", len(infos)))
		for _, info := range infos {
			r.Println(output.FormatHeader(2, info.Path))
			r.Println(output.FormatKeyValue("Dialect", info.Dialect))
			r.Println(output.FormatKeyValue("Table", info.Table))
			r.Println(output.FormatKeyValue("Columns", fmt.Sprintf("%d", len(info.Columns))))
			if info.Description != "" {
				r.Println(output.FormatKeyValue("Description", info.Description))
			}
			r.Println("")
		}
	default:
		r.Header(1, fmt.Sprintf("Datasets (%d total)", len(infos)))
		if len(infos) == 0 {
			r.Muted(fmt.Sprintf("  none found in %s", c.Cfg.DatasetsDir))
			return nil
		}
		st := r.Styles()
		for _, info := range infos {
			r.Printf("  %s %s\n", st.Dataset.Render(info.Path),
				st.Muted.Render(fmt.Sprintf("%s.%s, %d columns", info.Dialect, info.Table, len(info.Columns))))
		}
	}
	return nil
}

func datasetInfo(ds *intconfig.Dataset) output.DatasetInfo {
	cols := make([]core.Column, len(ds.Columns))
	for i, c := range ds.Columns {
		cols[i] = core.Column{Name: c.Name, Type: c.Type, Description: c.Description}
	}
	return output.DatasetInfo{
		Path:        ds.Path,
		Name:        ds.Name,
		Description: ds.Description,
		Dialect:     ds.Dialect(),
		Table:       ds.Source.Table,
		File:        ds.File,
		Columns:     cols,
	}
}
