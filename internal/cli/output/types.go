package output

import "github.com/leapstack-labs/sqlframe/pkg/core"

// JSON payloads written by the CLI commands.

// DatasetInfo describes one dataset.
type DatasetInfo struct {
	Path        string                 `json:"path" yaml:"path"`
	Name        string                 `json:"name" yaml:"name"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Dialect     string                 `json:"dialect" yaml:"dialect"`
	Table       string                 `json:"table" yaml:"table"`
	File        string                 `json:"file,omitempty" yaml:"file,omitempty"`
	Columns     []core.Column          `json:"columns" yaml:"columns"`
	Connection  *core.ConnectionConfig `json:"connection,omitempty" yaml:"connection,omitempty"`
}

// DatasetList is the payload of the datasets command.
type DatasetList struct {
	Datasets []DatasetInfo `json:"datasets"`
	Total    int           `json:"total"`
}

// CheckResult is the outcome of loading one dataset preview.
type CheckResult struct {
	Dataset string `json:"dataset"`
	Status  string `json:"status"`
	Rows    int    `json:"rows"`
	Error   string `json:"error,omitempty"`
}

// CheckSummary is the payload of the check command.
type CheckSummary struct {
	Results []CheckResult `json:"results"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
}

// Validation is the payload of the validate command.
type Validation struct {
	Dialect   string `json:"dialect"`
	Canonical string `json:"canonical"`
	Safe      bool   `json:"safe"`
	Rule      string `json:"rule,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
}

// DialectInfo describes one registered dialect.
type DialectInfo struct {
	Name          string `json:"name"`
	Backend       bool   `json:"backend"`
	DefaultSchema string `json:"default_schema,omitempty"`
	Placeholder   string `json:"placeholder"`
	Default       bool   `json:"default,omitempty"`
}
