package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/sqlframe/pkg/core"
)

// Result formats accepted by RenderResults.
const (
	FormatTable    = "table"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// ResultFormats lists the accepted result formats.
var ResultFormats = []string{FormatTable, FormatJSON, FormatCSV, FormatMarkdown}

// ResultFormat maps a renderer mode to the default result format.
func ResultFormat(mode OutputMode) string {
	switch mode {
	case ModeJSON:
		return FormatJSON
	case ModeMarkdown:
		return FormatMarkdown
	default:
		return FormatTable
	}
}

// IsResultFormat reports whether name is an accepted result format.
func IsResultFormat(name string) bool {
	switch strings.ToLower(name) {
	case "", "md", FormatTable, FormatJSON, FormatCSV, FormatMarkdown:
		return true
	}
	return false
}

// RenderResults writes rs to w in the named format. An empty format means table.
func RenderResults(w io.Writer, rs *core.ResultSet, format string) error {
	if rs == nil {
		rs = &core.ResultSet{}
	}
	switch strings.ToLower(format) {
	case FormatJSON:
		return renderJSON(w, rs)
	case FormatCSV:
		return renderCSV(w, rs)
	case "md", FormatMarkdown:
		return renderMarkdown(w, rs)
	case "", FormatTable:
		return renderTable(w, rs)
	default:
		return fmt.Errorf("unknown format %q (expected one of %s)", format, strings.Join(ResultFormats, ", "))
	}
}

func renderTable(w io.Writer, rs *core.ResultSet) error {
	if rs.Len() == 0 {
		if len(rs.Columns) > 0 {
			_, _ = fmt.Fprintln(w, strings.Join(rs.Columns, " | "))
		}
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rs.Rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = FormatValue(v)
		}
		t.AppendRow(r)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", rs.Len())
	return nil
}

func renderJSON(w io.Writer, rs *core.ResultSet) error {
	records := rs.Records()
	for _, rec := range records {
		for k, v := range rec {
			if b, ok := v.([]byte); ok {
				rec[k] = string(b)
			}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderCSV(w io.Writer, rs *core.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return err
	}
	for _, row := range rs.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = FormatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderMarkdown(w io.Writer, rs *core.ResultSet) error {
	cols := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		cols[i] = escapeMarkdownCell(c)
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))

	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rs.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeMarkdownCell(FormatValue(v))
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	_, _ = fmt.Fprintf(w, "\n(%d rows)\n", rs.Len())
	return nil
}

// FormatValue renders a cell value for text output. Nil is NULL.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
