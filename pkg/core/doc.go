// Package core defines the shared language of the sqlframe system.
//
// This package contains:
//   - Domain entities (Schema, Column, Query, ResultSet)
//   - Connection descriptors handed to backend executors (ConnectionConfig)
//   - Dialect policy data (DialectConfig)
//   - The failure surface (MaliciousQueryError, BackendUnavailableError, BackendExecutionError)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
