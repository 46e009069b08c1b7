package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
)

// FileSource reads a collection document from disk. The document is either
// a bare list of cards or an object with a "cards" key; TOML files always
// use the [[cards]] form.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file the source reads.
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Describe() string {
	return s.path
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}
	cards, err := decodeDocument(strings.ToLower(filepath.Ext(s.path)), data)
	if err != nil {
		return nil, fmt.Errorf("parse collection: %w", err)
	}
	return cards, nil
}

type document struct {
	Cards []Card `json:"cards" yaml:"cards" toml:"cards"`
}

func decodeDocument(ext string, data []byte) ([]Card, error) {
	switch ext {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".toml":
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Cards, nil
	}
	return nil, fmt.Errorf("extension %q: %w", ext, ErrUnsupportedSource)
}

func decodeJSON(data []byte) ([]Card, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var cards []Card
		if err := json.Unmarshal(trimmed, &cards); err != nil {
			return nil, err
		}
		return cards, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Cards, nil
}

func decodeYAML(data []byte) ([]Card, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '-' || trimmed[0] == '[' {
		var cards []Card
		if err := yaml.Unmarshal(trimmed, &cards); err != nil {
			return nil, err
		}
		return cards, nil
	}
	var doc document
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Cards, nil
}
