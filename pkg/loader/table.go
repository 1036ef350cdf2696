package loader

import (
	"context"

	"github.com/leapstack-labs/sqlframe/pkg/core"
)

// VirtualTable is a loaded dataset. It keeps the preview taken by Load and
// sends every other query to the backend.
//
// A VirtualTable holds no connection and is safe for concurrent use.
type VirtualTable struct {
	schema   *core.Schema
	executor Executor
	preview  *core.ResultSet
}

// Head returns the preview rows captured by Load. It never queries the backend.
// The result is shared and must not be modified.
func (t *VirtualTable) Head() *core.ResultSet {
	return t.preview
}

// Schema returns the dataset schema.
func (t *VirtualTable) Schema() *core.Schema {
	return t.schema
}

// Columns returns the schema's column names in declared order.
func (t *VirtualTable) Columns() []string {
	return t.schema.ColumnNames()
}

// RunQuery executes sql against the table's dialect and connection. Each call
// reaches the backend; results are not cached and the preview is untouched.
func (t *VirtualTable) RunQuery(ctx context.Context, sql string, args ...any) (*core.ResultSet, error) {
	q := core.RawQuery(sql, t.schema.Dialect(), args...).For(t.schema)
	rs, err := t.executor.Execute(ctx, q)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = &core.ResultSet{}
	}
	return rs, nil
}
