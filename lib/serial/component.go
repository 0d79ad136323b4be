// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"

	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/stream"
)

// Component variant tags. Protocol constants: changing a value breaks
// every previously encoded stream.
const (
	componentTagModule  byte = 1
	componentTagProject byte = 2
	componentTagFile    byte = 3
)

// ComponentIdentifierCodec encodes any ComponentIdentifier as a
// variant tag byte followed by the variant's interface-level fields.
// Classification goes through the variant interfaces (ModuleComponent,
// ProjectComponent, FileComponent), never concrete types, so distinct
// implementations of the same variant fold onto one wire form and any
// subtype-specific extras are intentionally not encoded.
//
// A value implementing several variant interfaces classifies in the
// order module, project, file. Decoded identifiers are always the
// depmodel default implementations.
type ComponentIdentifierCodec struct {
	factory depmodel.ModuleIdentifierFactory
}

// NewComponentIdentifierCodec returns a codec reconstructing module
// coordinates through factory.
func NewComponentIdentifierCodec(factory depmodel.ModuleIdentifierFactory) *ComponentIdentifierCodec {
	return &ComponentIdentifierCodec{factory: factory}
}

// Encode implements Codec[depmodel.ComponentIdentifier].
func (c *ComponentIdentifierCodec) Encode(writer *stream.Writer, value depmodel.ComponentIdentifier) error {
	switch component := value.(type) {
	case depmodel.ModuleComponent:
		if err := writer.WriteByte(componentTagModule); err != nil {
			return fmt.Errorf("component tag: %w", err)
		}
		module := component.ModuleVersion()
		if err := writer.WriteString(module.Group()); err != nil {
			return fmt.Errorf("component module group: %w", err)
		}
		if err := writer.WriteString(module.Name()); err != nil {
			return fmt.Errorf("component module name: %w", err)
		}
		if err := writer.WriteString(module.Version()); err != nil {
			return fmt.Errorf("component module version: %w", err)
		}
		return nil

	case depmodel.ProjectComponent:
		if err := writer.WriteByte(componentTagProject); err != nil {
			return fmt.Errorf("component tag: %w", err)
		}
		if err := writer.WriteString(component.ProjectPath()); err != nil {
			return fmt.Errorf("component project path: %w", err)
		}
		return nil

	case depmodel.FileComponent:
		if err := writer.WriteByte(componentTagFile); err != nil {
			return fmt.Errorf("component tag: %w", err)
		}
		if err := writer.WriteString(component.File()); err != nil {
			return fmt.Errorf("component file: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("component identifier %T matches no wire variant: %w", value, ErrUnsupportedType)
	}
}

// Decode implements Codec[depmodel.ComponentIdentifier].
func (c *ComponentIdentifierCodec) Decode(reader *stream.Reader) (depmodel.ComponentIdentifier, error) {
	tag, err := reader.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("component tag: %w", err)
	}
	switch tag {
	case componentTagModule:
		group, err := reader.ReadString()
		if err != nil {
			return nil, fmt.Errorf("component module group: %w", err)
		}
		name, err := reader.ReadString()
		if err != nil {
			return nil, fmt.Errorf("component module name: %w", err)
		}
		version, err := reader.ReadString()
		if err != nil {
			return nil, fmt.Errorf("component module version: %w", err)
		}
		return depmodel.NewModuleComponentIdentifier(c.factory.ModuleWithVersion(group, name, version)), nil

	case componentTagProject:
		path, err := reader.ReadString()
		if err != nil {
			return nil, fmt.Errorf("component project path: %w", err)
		}
		return depmodel.NewProjectComponentIdentifier(path), nil

	case componentTagFile:
		file, err := reader.ReadString()
		if err != nil {
			return nil, fmt.Errorf("component file: %w", err)
		}
		return depmodel.NewOpaqueFileComponentIdentifier(file), nil

	default:
		return nil, fmt.Errorf("component variant tag 0x%02x is unknown: %w", tag, stream.ErrMalformedStream)
	}
}
