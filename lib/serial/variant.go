// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"

	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/stream"
)

// ResolvedVariantResultCodec is the composite codec: owner component,
// display name, attribute container, capability count, then each
// capability, in that order. Capability order on the wire is the
// result's construction order and decode preserves it — the set is
// never re-sorted.
//
// The component and attribute sub-codecs are supplied at construction
// and used directly. The codec never asks a registry to re-resolve
// them per value, so its dispatch cannot diverge from what the
// registry would resolve for the same fields.
type ResolvedVariantResultCodec struct {
	components   *ComponentIdentifierCodec
	attributes   *AttributeContainerCodec
	capabilities CapabilityCodec
}

// NewResolvedVariantResultCodec returns a composite codec wired to the
// given sub-codecs.
func NewResolvedVariantResultCodec(components *ComponentIdentifierCodec, attributes *AttributeContainerCodec) *ResolvedVariantResultCodec {
	return &ResolvedVariantResultCodec{components: components, attributes: attributes}
}

// Encode implements Codec[depmodel.ResolvedVariantResult].
func (c *ResolvedVariantResultCodec) Encode(writer *stream.Writer, value depmodel.ResolvedVariantResult) error {
	if err := c.components.Encode(writer, value.Owner()); err != nil {
		return fmt.Errorf("variant owner: %w", err)
	}
	if err := writer.WriteString(value.DisplayName()); err != nil {
		return fmt.Errorf("variant display name: %w", err)
	}
	if err := c.attributes.Encode(writer, value.Attributes()); err != nil {
		return fmt.Errorf("variant attributes: %w", err)
	}
	capabilities := value.Capabilities()
	if err := writer.WriteUint32(uint32(len(capabilities))); err != nil {
		return fmt.Errorf("variant capability count: %w", err)
	}
	for i, capability := range capabilities {
		if err := c.capabilities.Encode(writer, capability); err != nil {
			return fmt.Errorf("variant capability %d: %w", i, err)
		}
	}
	return nil
}

// Decode implements Codec[depmodel.ResolvedVariantResult].
func (c *ResolvedVariantResultCodec) Decode(reader *stream.Reader) (depmodel.ResolvedVariantResult, error) {
	var zero depmodel.ResolvedVariantResult
	owner, err := c.components.Decode(reader)
	if err != nil {
		return zero, fmt.Errorf("variant owner: %w", err)
	}
	displayName, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("variant display name: %w", err)
	}
	attributes, err := c.attributes.Decode(reader)
	if err != nil {
		return zero, fmt.Errorf("variant attributes: %w", err)
	}
	count, err := reader.ReadUint32()
	if err != nil {
		return zero, fmt.Errorf("variant capability count: %w", err)
	}
	// Wire-supplied count; cap the pre-allocation so corruption cannot
	// force a giant allocation before the first element read fails.
	capabilities := make([]depmodel.Capability, 0, min(count, 1024))
	for i := uint32(0); i < count; i++ {
		capability, err := c.capabilities.Decode(reader)
		if err != nil {
			return zero, fmt.Errorf("variant capability %d: %w", i, err)
		}
		capabilities = append(capabilities, capability)
	}
	return depmodel.NewResolvedVariantResult(owner, displayName, attributes, capabilities), nil
}
