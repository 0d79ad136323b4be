// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

// Capability identifies a named capability a component provides: a
// (group, name) pair with an optional version. Two components that
// declare the same capability are mutually exclusive in a dependency
// graph regardless of their own coordinates.
//
// Capability is comparable; values with an absent version never
// compare equal to values with version "" present.
type Capability struct {
	group      string
	name       string
	version    string
	hasVersion bool
}

// NewCapability returns a capability with an explicit version.
func NewCapability(group, name, version string) Capability {
	return Capability{group: group, name: name, version: version, hasVersion: true}
}

// NewCapabilityWithoutVersion returns a capability with no version.
// This is distinct from a capability whose version is the empty
// string.
func NewCapabilityWithoutVersion(group, name string) Capability {
	return Capability{group: group, name: name}
}

// Group returns the capability's group coordinate.
func (c Capability) Group() string {
	return c.group
}

// Name returns the capability's name coordinate.
func (c Capability) Name() string {
	return c.name
}

// Version returns the capability's version and whether one is set.
func (c Capability) Version() (string, bool) {
	return c.version, c.hasVersion
}

// DisplayName returns "group:name:version", or "group:name" when no
// version is set.
func (c Capability) DisplayName() string {
	if c.hasVersion {
		return c.group + ":" + c.name + ":" + c.version
	}
	return c.group + ":" + c.name
}
