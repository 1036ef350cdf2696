// Package all links every sqlframe backend into a binary.
//
//	import _ "github.com/leapstack-labs/sqlframe/pkg/adapters/all"
//
// Binaries that need fewer drivers import the individual adapter packages.
package all

import (
	_ "github.com/leapstack-labs/sqlframe/pkg/adapters/cockroachdb"
	_ "github.com/leapstack-labs/sqlframe/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/sqlframe/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/sqlframe/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/sqlframe/pkg/adapters/sqlite"
	_ "github.com/leapstack-labs/sqlframe/pkg/adapters/trino"
)
