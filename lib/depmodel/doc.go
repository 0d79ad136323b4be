// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package depmodel defines the immutable value types that describe
// resolved dependency metadata: capabilities, module and component
// identifiers, artifact identifiers, attribute containers, and
// resolved variant results.
//
// All types follow the same construction discipline: unexported
// fields, typed constructors, accessor methods. Values are never
// mutated after construction, so they are safe to share across
// goroutines and to use as map keys where the type is comparable.
//
// Component and artifact identifiers are polymorphic. The variant
// sub-interfaces (ModuleComponent, ProjectComponent, FileComponent)
// expose every field the wire format carries, so the serial package
// can encode any implementation — including ones defined outside this
// package — without reaching for subtype-specific extras.
package depmodel
