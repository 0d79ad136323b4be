// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

import "sync"

// ModuleIdentifier is a (group, name) pair naming a module without
// reference to any particular version.
type ModuleIdentifier struct {
	group string
	name  string
}

// NewModuleIdentifier returns the identifier for group:name.
func NewModuleIdentifier(group, name string) ModuleIdentifier {
	return ModuleIdentifier{group: group, name: name}
}

// Group returns the module's group coordinate.
func (m ModuleIdentifier) Group() string {
	return m.group
}

// Name returns the module's name coordinate.
func (m ModuleIdentifier) Name() string {
	return m.name
}

// DisplayName returns "group:name".
func (m ModuleIdentifier) DisplayName() string {
	return m.group + ":" + m.name
}

// ModuleVersionIdentifier pins a module to one version.
type ModuleVersionIdentifier struct {
	module  ModuleIdentifier
	version string
}

// NewModuleVersionIdentifier returns the identifier for
// group:name:version.
func NewModuleVersionIdentifier(group, name, version string) ModuleVersionIdentifier {
	return ModuleVersionIdentifier{module: NewModuleIdentifier(group, name), version: version}
}

// Module returns the versionless module identifier.
func (m ModuleVersionIdentifier) Module() ModuleIdentifier {
	return m.module
}

// Group returns the module's group coordinate.
func (m ModuleVersionIdentifier) Group() string {
	return m.module.group
}

// Name returns the module's name coordinate.
func (m ModuleVersionIdentifier) Name() string {
	return m.module.name
}

// Version returns the pinned version.
func (m ModuleVersionIdentifier) Version() string {
	return m.version
}

// DisplayName returns "group:name:version".
func (m ModuleVersionIdentifier) DisplayName() string {
	return m.module.DisplayName() + ":" + m.version
}

// ModuleIdentifierFactory constructs module identifiers during decode.
// The serial package never builds identifiers directly; routing
// construction through a factory lets deployments intern coordinate
// strings or layer validation without touching the codecs.
//
// Implementations must be safe for concurrent use: decoding happens on
// whatever goroutine holds the stream.
type ModuleIdentifierFactory interface {
	Module(group, name string) ModuleIdentifier
	ModuleWithVersion(group, name, version string) ModuleVersionIdentifier
}

// InterningModuleIdentifierFactory is a ModuleIdentifierFactory that
// interns coordinate strings. Decoded metadata repeats the same group
// and name strings across thousands of records; interning makes every
// identifier share one backing array per distinct coordinate instead
// of holding its own copy read off the wire.
type InterningModuleIdentifierFactory struct {
	mutex sync.Mutex
	pool  map[string]string
}

// NewInterningModuleIdentifierFactory returns an empty interning
// factory.
func NewInterningModuleIdentifierFactory() *InterningModuleIdentifierFactory {
	return &InterningModuleIdentifierFactory{pool: make(map[string]string)}
}

// Module returns the identifier for group:name with both coordinates
// interned.
func (f *InterningModuleIdentifierFactory) Module(group, name string) ModuleIdentifier {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return NewModuleIdentifier(f.intern(group), f.intern(name))
}

// ModuleWithVersion returns the identifier for group:name:version with
// all three coordinates interned.
func (f *InterningModuleIdentifierFactory) ModuleWithVersion(group, name, version string) ModuleVersionIdentifier {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return ModuleVersionIdentifier{
		module:  NewModuleIdentifier(f.intern(group), f.intern(name)),
		version: f.intern(version),
	}
}

// intern must be called with the mutex held.
func (f *InterningModuleIdentifierFactory) intern(value string) string {
	if pooled, ok := f.pool[value]; ok {
		return pooled
	}
	f.pool[value] = value
	return value
}
