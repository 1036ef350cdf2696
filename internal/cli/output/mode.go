// Package output renders CLI output for terminals, pipes and machines.
//
// A Renderer picks a mode once: styled text on a terminal, markdown when piped,
// or JSON when asked. Query results have their own formats (table, json, csv,
// markdown) chosen per command.
package output

import "strings"

// OutputMode selects how a Renderer writes.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"     // text on a TTY, markdown otherwise
	ModeText     OutputMode = "text"     // styled text
	ModeMarkdown OutputMode = "markdown" // plain markdown
	ModeJSON     OutputMode = "json"     // machine readable
)

// Mode parses a mode name. Unknown or empty names are ModeAuto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}
