package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams_Strict(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		wantKey string
	}{
		{
			name:    "misspelled top-level key",
			input:   map[string]any{"extension": []any{"httpfs"}},
			wantKey: "extension",
		},
		{
			name:    "connection key in params",
			input:   map[string]any{"path": "/tmp/db.duckdb"},
			wantKey: "path",
		},
		{
			name: "unknown secret field",
			input: map[string]any{
				"secrets": []any{map[string]any{"type": "s3", "session_token": "x"}},
			},
			wantKey: "session_token",
		},
		{
			name:    "secrets not a list of maps",
			input:   map[string]any{"secrets": "s3"},
			wantKey: "secrets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.input)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), "invalid duckdb params")
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  *Params
	}{
		{
			name:  "nil",
			input: nil,
			want:  &Params{},
		},
		{
			name:  "numeric setting becomes text",
			input: map[string]any{"settings": map[string]any{"threads": 4, "memory_limit": "2GB"}},
			want:  &Params{Settings: map[string]string{"threads": "4", "memory_limit": "2GB"}},
		},
		{
			name:  "single extension",
			input: map[string]any{"extensions": "httpfs"},
			want:  &Params{Extensions: []string{"httpfs"}},
		},
		{
			name: "use_ssl from text",
			input: map[string]any{
				"secrets": []any{map[string]any{"type": "s3", "endpoint": "minio:9000", "use_ssl": "false"}},
			},
			want: &Params{Secrets: []SecretConfig{{Type: "s3", Endpoint: "minio:9000", UseSSL: boolPtr(false)}}},
		},
		{
			name: "scope list kept as given",
			input: map[string]any{
				"secrets": []any{map[string]any{"type": "gcs", "scope": []any{"gs://a", "gs://b"}}},
			},
			want: &Params{Secrets: []SecretConfig{{Type: "gcs", Scope: []any{"gs://a", "gs://b"}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseParams(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func TestSetupStatements(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		want   []string
	}{
		{
			name:   "no params",
			params: nil,
			want:   nil,
		},
		{
			name: "settings sorted and quoted",
			params: map[string]any{"settings": map[string]any{
				"threads":     2,
				"search_path": "it's",
			}},
			want: []string{
				"SET search_path = 'it''s'",
				"SET threads = '2'",
			},
		},
		{
			name: "secrets named by type and position",
			params: map[string]any{
				"extensions": []any{"httpfs"},
				"secrets": []any{
					map[string]any{"type": "s3", "provider": "credential_chain"},
					map[string]any{"type": "gcs", "provider": "credential_chain"},
					map[string]any{"type": "s3", "region": "eu-west-1"},
				},
			},
			want: []string{
				"INSTALL httpfs",
				"LOAD httpfs",
				"CREATE OR REPLACE SECRET sqlframe_s3_0 (TYPE s3, PROVIDER credential_chain)",
				"CREATE OR REPLACE SECRET sqlframe_gcs_1 (TYPE gcs, PROVIDER credential_chain)",
				"CREATE OR REPLACE SECRET sqlframe_s3_2 (TYPE s3, REGION 'eu-west-1')",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parseParams(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, setupStatements(p))
		})
	}
}

func TestCreateSecret(t *testing.T) {
	tests := []struct {
		name string
		cfg  SecretConfig
		want string
	}{
		{
			name: "quote in credentials is doubled",
			cfg:  SecretConfig{Type: "s3", KeyID: "AK'IA", Secret: "s'; DROP SECRET x; --"},
			want: "CREATE OR REPLACE SECRET sqlframe_s3_3 (TYPE s3, KEY_ID 'AK''IA', SECRET 's''; DROP SECRET x; --')",
		},
		{
			name: "single scope",
			cfg:  SecretConfig{Type: "r2", Scope: "r2://bucket/prefix"},
			want: "CREATE OR REPLACE SECRET sqlframe_r2_3 (TYPE r2, SCOPE 'r2://bucket/prefix')",
		},
		{
			name: "typed scope list",
			cfg:  SecretConfig{Type: "s3", Scope: []string{"s3://a", "s3://b'c"}},
			want: "CREATE OR REPLACE SECRET sqlframe_s3_3 (TYPE s3, SCOPE ('s3://a', 's3://b''c'))",
		},
		{
			name: "path style endpoint without tls",
			cfg: SecretConfig{
				Type:     "s3",
				Provider: "config",
				Endpoint: "minio:9000",
				URLStyle: "path",
				UseSSL:   boolPtr(false),
			},
			want: "CREATE OR REPLACE SECRET sqlframe_s3_3 (TYPE s3, PROVIDER config, ENDPOINT 'minio:9000', " +
				"URL_STYLE 'path', USE_SSL false)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, createSecret(3, tt.cfg))
		})
	}
}
