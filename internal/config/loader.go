package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/sqlframe/pkg/core"
)

// ErrDatasetNotFound is returned when no schema file exists for a dataset path.
var ErrDatasetNotFound = errors.New("dataset not found")

// ValidateDatasetPath checks that p has the form org/name.
func ValidateDatasetPath(p string) error {
	parts := strings.Split(p, "/")
	if len(parts) != 2 {
		return fmt.Errorf("invalid dataset path %q: expected <org>/<name>", p)
	}
	for _, part := range parts {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `\:`) {
			return fmt.Errorf("invalid dataset path %q: expected <org>/<name>", p)
		}
	}
	return nil
}

// LoadDataset loads and validates the dataset at root/<org>/<name>/schema.yaml.
// Environment variables in the inline connection are expanded.
func LoadDataset(root, datasetPath string) (*Dataset, error) {
	if err := ValidateDatasetPath(datasetPath); err != nil {
		return nil, err
	}

	dir := filepath.Join(root, filepath.FromSlash(datasetPath))
	schemaFile := findDatasetFile(dir)
	if schemaFile == "" {
		return nil, fmt.Errorf("%w: %s\nHint: create %s", ErrDatasetNotFound, datasetPath,
			filepath.Join(dir, DatasetFileName))
	}

	ds, err := LoadDatasetFile(schemaFile)
	if err != nil {
		return nil, err
	}
	ds.Path = datasetPath
	return ds, nil
}

// LoadDatasetFile loads and validates one schema file.
func LoadDatasetFile(schemaFile string) (*Dataset, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(schemaFile), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", schemaFile, err)
	}

	var ds Dataset
	if err := k.Unmarshal("", &ds); err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", schemaFile, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", schemaFile, err)
	}

	ds.File = schemaFile
	ExpandConnectionEnvVars(ds.Source.Connection)
	return &ds, nil
}

// ListDatasets returns the sorted paths (org/name) of every dataset under root.
// A missing root yields no datasets.
func ListDatasets(root string) ([]string, error) {
	orgs, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read datasets directory: %w", err)
	}

	var paths []string
	for _, org := range orgs {
		if !org.IsDir() || strings.HasPrefix(org.Name(), ".") {
			continue
		}
		names, err := os.ReadDir(filepath.Join(root, org.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read datasets directory: %w", err)
		}
		for _, name := range names {
			if !name.IsDir() {
				continue
			}
			if findDatasetFile(filepath.Join(root, org.Name(), name.Name())) != "" {
				paths = append(paths, path.Join(org.Name(), name.Name()))
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// ResolveConnection returns the connection a dataset runs with. The named
// connection (connection_ref) is the base, or fallback when there is no
// reference; the dataset's inline connection overrides it field by field.
func ResolveConnection(ds *Dataset, named map[string]core.ConnectionConfig, fallback *core.ConnectionConfig) (core.ConnectionConfig, error) {
	base := fallback
	if ref := ds.Source.ConnectionRef; ref != "" {
		c, ok := named[ref]
		if !ok {
			return core.ConnectionConfig{}, fmt.Errorf("dataset %s: unknown connection %q\nHint: define it under connections: in sqlframe.yaml",
				ds.Path, ref)
		}
		base = &c
	}

	merged := MergeConnection(base, ds.Source.Connection)
	if merged == nil {
		merged = &core.ConnectionConfig{}
	}
	ExpandConnectionEnvVars(merged)
	ApplyConnectionDefaults(ds.Dialect(), merged)
	return *merged, nil
}

// findDatasetFile returns the schema file in dir, or "" if there is none.
func findDatasetFile(dir string) string {
	for _, name := range []string{DatasetFileName, DatasetFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}
