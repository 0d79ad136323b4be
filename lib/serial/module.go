// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"

	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/stream"
)

// ModuleVersionIdentifierCodec encodes module coordinates as group,
// name, version. Decoded identifiers are built through the module
// identifier factory, never constructed directly.
type ModuleVersionIdentifierCodec struct {
	factory depmodel.ModuleIdentifierFactory
}

// NewModuleVersionIdentifierCodec returns a codec reconstructing
// identifiers through factory.
func NewModuleVersionIdentifierCodec(factory depmodel.ModuleIdentifierFactory) *ModuleVersionIdentifierCodec {
	return &ModuleVersionIdentifierCodec{factory: factory}
}

// Encode implements Codec[depmodel.ModuleVersionIdentifier].
func (c *ModuleVersionIdentifierCodec) Encode(writer *stream.Writer, value depmodel.ModuleVersionIdentifier) error {
	if err := writer.WriteString(value.Group()); err != nil {
		return fmt.Errorf("module group: %w", err)
	}
	if err := writer.WriteString(value.Name()); err != nil {
		return fmt.Errorf("module name: %w", err)
	}
	if err := writer.WriteString(value.Version()); err != nil {
		return fmt.Errorf("module version: %w", err)
	}
	return nil
}

// Decode implements Codec[depmodel.ModuleVersionIdentifier].
func (c *ModuleVersionIdentifierCodec) Decode(reader *stream.Reader) (depmodel.ModuleVersionIdentifier, error) {
	group, err := reader.ReadString()
	if err != nil {
		return depmodel.ModuleVersionIdentifier{}, fmt.Errorf("module group: %w", err)
	}
	name, err := reader.ReadString()
	if err != nil {
		return depmodel.ModuleVersionIdentifier{}, fmt.Errorf("module name: %w", err)
	}
	version, err := reader.ReadString()
	if err != nil {
		return depmodel.ModuleVersionIdentifier{}, fmt.Errorf("module version: %w", err)
	}
	return c.factory.ModuleWithVersion(group, name, version), nil
}
