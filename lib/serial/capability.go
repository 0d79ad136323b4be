// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"

	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/stream"
)

// CapabilityCodec encodes a capability as group, name, nullable
// version, in that order. It performs no validation of its own: a
// malformed stream surfaces as an error from the stream layer.
type CapabilityCodec struct{}

// Encode implements Codec[depmodel.Capability].
func (CapabilityCodec) Encode(writer *stream.Writer, value depmodel.Capability) error {
	if err := writer.WriteString(value.Group()); err != nil {
		return fmt.Errorf("capability group: %w", err)
	}
	if err := writer.WriteString(value.Name()); err != nil {
		return fmt.Errorf("capability name: %w", err)
	}
	version, present := value.Version()
	if err := writer.WriteNullableString(version, present); err != nil {
		return fmt.Errorf("capability version: %w", err)
	}
	return nil
}

// Decode implements Codec[depmodel.Capability].
func (CapabilityCodec) Decode(reader *stream.Reader) (depmodel.Capability, error) {
	group, err := reader.ReadString()
	if err != nil {
		return depmodel.Capability{}, fmt.Errorf("capability group: %w", err)
	}
	name, err := reader.ReadString()
	if err != nil {
		return depmodel.Capability{}, fmt.Errorf("capability name: %w", err)
	}
	version, present, err := reader.ReadNullableString()
	if err != nil {
		return depmodel.Capability{}, fmt.Errorf("capability version: %w", err)
	}
	if !present {
		return depmodel.NewCapabilityWithoutVersion(group, name), nil
	}
	return depmodel.NewCapability(group, name, version), nil
}
