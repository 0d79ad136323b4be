// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package attrschema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/depforge/depforge/lib/depmodel"
)

// schemaFile is the on-disk schema shape, shared by both formats.
type schemaFile struct {
	Attributes map[string]attributeDeclaration `json:"attributes" yaml:"attributes"`
}

type attributeDeclaration struct {
	// Kind is one of "string", "bool", "int", "named".
	Kind string `json:"kind" yaml:"kind"`

	// Type is the named domain type; required for kind "named",
	// rejected otherwise.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Parse parses a JSONC schema document.
func Parse(data []byte) (*depmodel.Schema, error) {
	var file schemaFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, fmt.Errorf("parsing attribute schema: %w", err)
	}
	return build(file)
}

// ParseYAML parses a YAML schema document.
func ParseYAML(data []byte) (*depmodel.Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing attribute schema: %w", err)
	}
	return build(file)
}

// Load reads a schema file, picking the parser from the extension:
// .yaml/.yml for YAML, .json/.jsonc for JSONC.
func Load(path string) (*depmodel.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attribute schema: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json", ".jsonc":
		return Parse(data)
	default:
		return nil, fmt.Errorf("attribute schema %s: unsupported extension (want .json, .jsonc, .yaml or .yml)", path)
	}
}

func build(file schemaFile) (*depmodel.Schema, error) {
	schema := depmodel.NewSchema()
	for name, declaration := range file.Attributes {
		switch declaration.Kind {
		case "named":
			if declaration.Type == "" {
				return nil, fmt.Errorf("attribute %q: kind \"named\" requires a type", name)
			}
			if err := schema.DeclareNamed(name, declaration.Type); err != nil {
				return nil, err
			}
		case "string", "bool", "int":
			if declaration.Type != "" {
				return nil, fmt.Errorf("attribute %q: type %q is only valid for kind \"named\"", name, declaration.Type)
			}
			if err := schema.Declare(name, kindOf(declaration.Kind)); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("attribute %q: unknown kind %q", name, declaration.Kind)
		}
	}
	return schema, nil
}

func kindOf(name string) depmodel.AttributeKind {
	switch name {
	case "bool":
		return depmodel.KindBool
	case "int":
		return depmodel.KindInt
	default:
		return depmodel.KindString
	}
}
