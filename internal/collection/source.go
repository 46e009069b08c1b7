package collection

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Source provides the initial card list.
type Source interface {
	Load(ctx context.Context) ([]Card, error)
	Describe() string
}

// Ensure the built-in sources implement Source at compile time.
var (
	_ Source = (*FileSource)(nil)
	_ Source = (*SQLiteSource)(nil)
	_ Source = (*HTTPSource)(nil)
)

// NewSource picks a source for location: http(s) URLs use HTTPSource,
// .db/.sqlite/.sqlite3 files use SQLiteSource, and .json/.yaml/.yml/.toml
// files use FileSource.
func NewSource(location string) (Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, fmt.Errorf("collection location is empty: %w", ErrUnsupportedSource)
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(trimmed)
	}
	switch strings.ToLower(filepath.Ext(trimmed)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteSource(trimmed), nil
	case ".json", ".yaml", ".yml", ".toml":
		return NewFileSource(trimmed), nil
	}
	return nil, fmt.Errorf("%q: %w", trimmed, ErrUnsupportedSource)
}
