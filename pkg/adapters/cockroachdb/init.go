package cockroachdb

import (
	"log/slog"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
)

func init() {
	adapter.Register("cockroachdb", func(l *slog.Logger) adapter.Adapter { return New(l) })
}
