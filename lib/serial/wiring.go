// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"github.com/depforge/depforge/lib/depmodel"
)

// NewDependencyRegistry builds the registry for the closed set of
// eight dependency-metadata base types. The three collaborators are
// used only during decode, to reconstruct domain values; they leave no
// trace in the wire format.
//
// Registration order below is load-bearing. ComponentIdentifier's only
// method is DisplayName, so nearly every type in the set satisfies it;
// registering the concrete capability, module and artifact types first
// keeps them on their own codecs, and ComponentIdentifier catches the
// remaining identifier implementations. Reordering this list changes
// dispatch.
func NewDependencyRegistry(
	policy FallbackPolicy,
	moduleFactory depmodel.ModuleIdentifierFactory,
	attributesFactory depmodel.AttributesFactory,
	schema *depmodel.Schema,
) *Registry {
	components := NewComponentIdentifierCodec(moduleFactory)
	attributes := NewAttributeContainerCodec(attributesFactory, schema)

	registry := NewRegistry(policy)
	Register[depmodel.Capability](registry, CapabilityCodec{})
	Register[depmodel.ModuleVersionIdentifier](registry, NewModuleVersionIdentifierCodec(moduleFactory))
	Register[depmodel.LocalArtifactIdentifier](registry, NewLocalArtifactIdentifierCodec(components))
	Register[depmodel.OpaqueArtifactIdentifier](registry, OpaqueArtifactIdentifierCodec{})
	Register[depmodel.ModuleArtifactIdentifier](registry, NewModuleArtifactIdentifierCodec(components))
	Register[depmodel.ComponentIdentifier](registry, components)
	Register[depmodel.AttributeContainer](registry, attributes)
	Register[depmodel.ResolvedVariantResult](registry, NewResolvedVariantResultCodec(components, attributes))
	return registry
}
