package commands

import (
	"errors"

	"github.com/leapstack-labs/sqlframe/pkg/format"
	"github.com/spf13/cobra"
)

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	var (
		dialectName string
		input       string
	)

	cmd := &cobra.Command{
		Use:   "format [SQL]",
		Short: "Print the canonical form of a statement",
		Long: `Print SQL in the canonical form used for validation and logging:
one clause per line, list items indented, keywords uppercased.`,
		Example: `  sqlframe format "select a, b from t where a = 1"
  sqlframe format --dialect mysql -i query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlText, ok, err := readSQL(cmd, args, input)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("no SQL given\nHint: pass it as an argument, with --input, or on stdin")
			}
			NewCommandContext(cmd).Renderer.Println(format.SQL(sqlText, dialectName))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "ansi", "SQL dialect")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Read SQL from file")
	_ = cmd.RegisterFlagCompletionFunc("dialect", completeDialects)

	return cmd
}
