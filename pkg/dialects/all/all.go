// Package all registers every bundled SQL dialect.
//
//	import _ "github.com/leapstack-labs/sqlframe/pkg/dialects/all"
package all

import (
	// Register dialects
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/cockroachdb"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/databricks"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/duckdb"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/postgres"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/snowflake"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/sqlite"
	_ "github.com/leapstack-labs/sqlframe/pkg/dialects/trino"
)
