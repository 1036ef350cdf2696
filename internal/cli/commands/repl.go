package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	"github.com/leapstack-labs/sqlframe/pkg/loader"
	"github.com/leapstack-labs/sqlframe/pkg/query"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "sqlframe> "
	replContinuePrompt = "     ...> "
	historyFileName    = ".sqlframe_history"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "repl <dataset>",
		Short: "Interactive SQL shell for a dataset",
		Long: `Load a dataset and read SQL statements interactively.

Statements end with a semicolon and run against the dataset's backend.
Dot commands inspect the loaded table; type .help for the list.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDatasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, NewCommandContext(cmd), args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", output.FormatTable, "Result format: table, json, csv, md")

	return cmd
}

// replSession is the state shared by the REPL loop and its dot commands.
type replSession struct {
	table  *loader.VirtualTable
	format string
	out    io.Writer
	errOut io.Writer
}

func runREPL(cmd *cobra.Command, c *CommandContext, path, format string) error {
	ctx := cmd.Context()

	vt, err := c.Load(ctx, path)
	if err != nil {
		return err
	}
	if format == "" {
		format = output.FormatTable
	}

	historyFile := ""
	if c.Cfg.ProjectRoot != "" {
		historyFile = filepath.Join(c.Cfg.ProjectRoot, historyFileName)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newTableCompleter(vt),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           readline.NewCancelableStdin(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s := &replSession{
		table:  vt,
		format: format,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	_, _ = fmt.Fprintf(s.out, "sqlframe REPL (%s, %s)\n", path, vt.Schema().Dialect())
	_, _ = fmt.Fprintln(s.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(s.out)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && strings.HasPrefix(line, ".") {
			if s.dotCommand(line) {
				break
			}
			continue
		}

		buf.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buf.WriteString("\n")
			rl.SetPrompt(replContinuePrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		stmt := strings.TrimSuffix(buf.String(), ";")
		buf.Reset()

		if err := s.run(ctx, stmt); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(s.out)
	}

	return nil
}

func (s *replSession) run(ctx context.Context, stmt string) error {
	result, err := s.table.RunQuery(ctx, stmt)
	if err != nil {
		return err
	}
	return output.RenderResults(s.out, result, s.format)
}

// dotCommand handles one dot command and reports whether the REPL should exit.
func (s *replSession) dotCommand(line string) (quit bool) {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".head":
		if err := output.RenderResults(s.out, s.table.Head(), s.format); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}

	case ".columns":
		for _, col := range s.table.Schema().Columns() {
			if col.Type != "" {
				_, _ = fmt.Fprintf(s.out, "  %s %s\n", col.Name, col.Type)
			} else {
				_, _ = fmt.Fprintf(s.out, "  %s\n", col.Name)
			}
		}

	case ".sql":
		_, _ = fmt.Fprintln(s.out, query.BuildPreview(s.table.Schema()).Text)

	case ".format":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "format: %s\n", s.format)
			break
		}
		if !output.IsResultFormat(parts[1]) {
			_, _ = fmt.Fprintf(s.errOut, "Error: unknown format %q\n", parts[1])
			break
		}
		s.format = parts[1]

	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .head            Show the cached preview rows
  .columns         List the dataset's columns
  .sql             Show the preview query
  .format [name]   Show or set the result format (table, json, csv, md)
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Only read-only statements are accepted
  - Tab completion works for the table and column names
`
	_, _ = fmt.Fprintln(w, help)
}

// newTableCompleter completes dot commands, the table name and column names.
func newTableCompleter(vt *loader.VirtualTable) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(vt.Schema().Table()),
	}
	for _, name := range vt.Columns() {
		items = append(items, readline.PcItem(name))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".head"),
		readline.PcItem(".columns"),
		readline.PcItem(".sql"),
		readline.PcItem(".format",
			readline.PcItem(output.FormatTable),
			readline.PcItem(output.FormatJSON),
			readline.PcItem(output.FormatCSV),
			readline.PcItem(output.FormatMarkdown),
		),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
