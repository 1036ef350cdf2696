// Package mysql provides a MySQL database adapter for sqlframe.
//
// Sessions run with ANSI_QUOTES so double-quoted identifiers work the same
// way they do on the other backends.
//
//	import _ "github.com/leapstack-labs/sqlframe/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
)

func init() {
	adapter.Register("mysql", func(l *slog.Logger) adapter.Adapter { return New(l) })
}
