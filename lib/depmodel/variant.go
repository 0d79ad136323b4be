// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

// ResolvedVariantResult is the outcome of selecting one variant of a
// resolved component: the owning component identifier, the variant's
// display name, its attributes, and the capabilities it provides.
//
// Capabilities form an ordered set: construction order is preserved
// and round-trips through the wire format unchanged.
type ResolvedVariantResult struct {
	owner        ComponentIdentifier
	displayName  string
	attributes   AttributeContainer
	capabilities []Capability
}

// NewResolvedVariantResult returns a variant result. The capability
// slice is copied.
func NewResolvedVariantResult(owner ComponentIdentifier, displayName string, attributes AttributeContainer, capabilities []Capability) ResolvedVariantResult {
	copied := make([]Capability, len(capabilities))
	copy(copied, capabilities)
	return ResolvedVariantResult{
		owner:        owner,
		displayName:  displayName,
		attributes:   attributes,
		capabilities: copied,
	}
}

// Owner returns the owning component identifier.
func (r ResolvedVariantResult) Owner() ComponentIdentifier {
	return r.owner
}

// DisplayName returns the variant's display name.
func (r ResolvedVariantResult) DisplayName() string {
	return r.displayName
}

// Attributes returns the variant's attribute container.
func (r ResolvedVariantResult) Attributes() AttributeContainer {
	return r.attributes
}

// Capabilities returns the capabilities in construction order. The
// returned slice is a copy.
func (r ResolvedVariantResult) Capabilities() []Capability {
	out := make([]Capability, len(r.capabilities))
	copy(out, r.capabilities)
	return out
}

// Equal reports field-wise equality. Component identifiers compare by
// interface equality (same dynamic type and value), capabilities by
// ordered comparison.
func (r ResolvedVariantResult) Equal(other ResolvedVariantResult) bool {
	if r.owner != other.owner || r.displayName != other.displayName {
		return false
	}
	if !r.attributes.Equal(other.attributes) {
		return false
	}
	if len(r.capabilities) != len(other.capabilities) {
		return false
	}
	for i, capability := range r.capabilities {
		if capability != other.capabilities[i] {
			return false
		}
	}
	return true
}
