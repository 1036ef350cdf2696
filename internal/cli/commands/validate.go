package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlframe/internal/cli/output"
	"github.com/leapstack-labs/sqlframe/pkg/dialect"
	"github.com/leapstack-labs/sqlframe/pkg/format"
	"github.com/leapstack-labs/sqlframe/pkg/safety"
	"github.com/spf13/cobra"
)

// ErrUnsafeQuery is returned by validate when the statement is rejected.
var ErrUnsafeQuery = errors.New("query rejected by read-only policy")

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Dialect string
	Input   string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [SQL]",
		Short: "Check a statement against the read-only policy",
		Long: `Format a statement and check it against a dialect's read-only policy,
without connecting to any database.

Prints the canonical text and the verdict. Exits non-zero when the
statement would be rejected.`,
		Example: `  sqlframe validate "SELECT * FROM users"
  sqlframe validate --dialect mysql "SELECT 1 /*! ; DROP TABLE t */"
  echo "DELETE FROM users" | sqlframe validate -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "ansi", "SQL dialect")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	_ = cmd.RegisterFlagCompletionFunc("dialect", completeDialects)

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	r := NewCommandContext(cmd).Renderer

	sqlText, ok, err := readSQL(cmd, args, opts.Input)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no SQL given\nHint: pass it as an argument, with --input, or on stdin")
	}

	name := strings.ToLower(opts.Dialect)
	if _, known := dialect.Get(name); !known {
		r.Warning(fmt.Sprintf("unknown dialect %q, checking with ANSI rules", opts.Dialect))
	}

	canonical := format.SQL(sqlText, name)
	verdict := safety.NewPolicy().Check(canonical, name)

	result := output.Validation{
		Dialect:   name,
		Canonical: canonical,
		Safe:      verdict.Safe,
		Rule:      verdict.RuleID,
		Reason:    verdict.Reason,
		Line:      verdict.Pos.Line,
		Column:    verdict.Pos.Column,
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(result); err != nil {
			return err
		}
	case output.ModeMarkdown:
		r.Println(output.FormatCodeBlock("sql", canonical))
		r.Println("")
		r.Println(output.FormatKeyValue("Dialect", name))
		r.Println(output.FormatKeyValue("Verdict", verdict.String()))
	default:
		r.Println(r.Styles().SQL.Render(canonical))
		r.Println("")
		if verdict.Safe {
			r.StatusLine(name, "success", "read-only")
		} else {
			r.StatusLine(name, "failed", verdict.String())
		}
	}

	if !verdict.Safe {
		return fmt.Errorf("%w: %s", ErrUnsafeQuery, verdict)
	}
	return nil
}

func completeDialects(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return dialect.List(), cobra.ShellCompDirectiveNoFileComp
}
