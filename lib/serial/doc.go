// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package serial implements the type-hierarchy-aware codec registry
// for dependency metadata and the codecs for the closed set of
// supported value types.
//
// The registry maps declared base types to codecs. Lookup resolves a
// requested type to its nearest registered base by walking the
// registrations in registration order and returning the first base the
// requested type is identical or assignable to. Registration order is
// therefore part of the contract, not an implementation detail: when a
// type satisfies two registered bases, the earlier registration wins,
// and [NewDependencyRegistry] depends on this to keep artifact
// identifiers from being captured by the broader ComponentIdentifier
// registration.
//
// Codecs are pure: a codec holds no mutable state, never retains the
// stream passed to a call, and reports failures by returning errors
// unchanged from the layer that produced them. A registry is built
// once at configuration time and is safe for unsynchronized concurrent
// use afterwards.
//
// Composite codecs (the resolved-variant codec, the artifact codecs)
// hold direct references to the sub-codecs they delegate to. They are
// wired at construction time rather than re-querying the registry per
// value, so composite dispatch cannot diverge from registry dispatch.
package serial
