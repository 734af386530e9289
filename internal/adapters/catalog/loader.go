package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/throughput-go/internal/domain/production"
	"github.com/andrescamacho/throughput-go/internal/infrastructure/config"
)

//go:embed data/default.yaml
var defaultDocument []byte

// Default returns the built-in catalog
func Default() (*production.Catalog, error) {
	c, err := Parse(defaultDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog document from path, or the built-in catalog if path is empty
func Load(path string) (*production.Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document.
// Every failure wraps production.ErrInvalidCatalog.
func Parse(data []byte) (*production.Catalog, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	return doc.toDomain()
}

// DefaultDocument returns the raw built-in catalog YAML
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}

func decode(data []byte) (*Document, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", production.ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: %v", production.ErrInvalidCatalog, err)
	}
	return &doc, nil
}

func validateDocument(doc *Document) error {
	if err := config.NewValidator().Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", production.ErrInvalidCatalog, err)
	}
	return nil
}
