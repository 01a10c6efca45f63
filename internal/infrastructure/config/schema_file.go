package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/bnema/tiler/internal/domain/entity"
)

// SchemaKind selects which document a JSON schema describes.
type SchemaKind string

const (
	SchemaConfig SchemaKind = "config"
	SchemaLayout SchemaKind = "layout"
)

// GenerateSchema returns the indented JSON schema for kind.
func GenerateSchema(kind SchemaKind) ([]byte, error) {
	r := new(jsonschema.Reflector)

	var schema *jsonschema.Schema
	switch kind {
	case SchemaConfig:
		schema = r.Reflect(&Config{})
		schema.ID = "https://github.com/bnema/tiler/config.schema.json"
		schema.Title = "Tiler Configuration"
		schema.Description = "Configuration schema for the tiler layout engine"
	case SchemaLayout:
		schema = r.Reflect(&entity.LayoutSnapshot{})
		schema.ID = "https://github.com/bnema/tiler/layout.schema.json"
		schema.Title = "Tiler Layout"
		schema.Description = "Serialized layout tree"
	default:
		return nil, fmt.Errorf("unknown schema kind %q", kind)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes <kind>.schema.json into dir (the config
// directory when empty) and returns its path.
func GenerateSchemaFile(kind SchemaKind, dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = GetConfigDir(); err != nil {
			return "", fmt.Errorf("failed to get config directory: %w", err)
		}
	}
	data, err := GenerateSchema(kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", err
	}

	schemaFile := filepath.Join(dir, string(kind)+".schema.json")
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}
