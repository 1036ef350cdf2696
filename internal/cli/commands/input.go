package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readSQL returns SQL from args, the --input file or piped stdin, in that order.
// ok is false when there is nothing to read because stdin is a terminal.
func readSQL(cmd *cobra.Command, args []string, inputFile string) (sql string, ok bool, err error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), true, nil
	case inputFile != "":
		content, err := os.ReadFile(inputFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(content), true, nil
	case isTerminal(cmd.InOrStdin()):
		return "", false, nil
	default:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), true, nil
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// bindArgs converts --arg values to driver arguments.
func bindArgs(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}
