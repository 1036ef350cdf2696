package trino

import (
	"net/url"
	"testing"

	"github.com/leapstack-labs/sqlframe/pkg/adapter"
	"github.com/leapstack-labs/sqlframe/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name       string
		config     core.ConnectionConfig
		wantScheme string
		wantHost   string
		wantUser   string
		wantQuery  map[string]string
	}{
		{
			name:       "defaults",
			config:     core.ConnectionConfig{Database: "hive"},
			wantScheme: "http",
			wantHost:   "localhost:8080",
			wantUser:   "sqlframe",
			wantQuery:  map[string]string{"catalog": "hive", "source": "sqlframe"},
		},
		{
			name: "schema and ssl",
			config: core.ConnectionConfig{
				Host:     "trino.example.com",
				Port:     8443,
				Database: "iceberg",
				Schema:   "sales",
				Username: "analyst",
				Options:  map[string]string{"ssl": "true", "source": "reports"},
			},
			wantScheme: "https",
			wantHost:   "trino.example.com:8443",
			wantUser:   "analyst",
			wantQuery:  map[string]string{"catalog": "iceberg", "schema": "sales", "source": "reports"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := buildDSN(tt.config)
			require.NoError(t, err)

			u, err := url.Parse(dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScheme, u.Scheme)
			assert.Equal(t, tt.wantHost, u.Host)
			assert.Equal(t, tt.wantUser, u.User.Username())
			for k, v := range tt.wantQuery {
				assert.Equal(t, v, u.Query().Get(k), k)
			}
		})
	}
}

func TestAdapter_Registered(t *testing.T) {
	factory, ok := adapter.Get("trino")
	require.True(t, ok)

	a, ok := factory(nil).(*Adapter)
	require.True(t, ok)
	assert.Equal(t, "trino", a.Dialect().Name)
}
