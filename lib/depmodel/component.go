// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

// ComponentIdentifier names a resolved component instance. The
// interface is deliberately minimal: the wire format distinguishes
// component variants through the sub-interfaces below, not through
// concrete types, so any value satisfying one of them can be encoded.
type ComponentIdentifier interface {
	// DisplayName returns a human-readable identifier used in
	// diagnostics and variant display names.
	DisplayName() string
}

// ModuleComponent is a component resolved from external module
// coordinates.
type ModuleComponent interface {
	ComponentIdentifier
	ModuleVersion() ModuleVersionIdentifier
}

// ProjectComponent is a component built from a project inside the
// current build, identified by its project path.
type ProjectComponent interface {
	ComponentIdentifier
	ProjectPath() string
}

// FileComponent is a component known only by the file that provides
// it, with no richer coordinates.
type FileComponent interface {
	ComponentIdentifier
	File() string
}

// ModuleComponentIdentifier is the default ModuleComponent
// implementation.
type ModuleComponentIdentifier struct {
	module ModuleVersionIdentifier
}

// NewModuleComponentIdentifier returns the component identifier for a
// module version.
func NewModuleComponentIdentifier(module ModuleVersionIdentifier) ModuleComponentIdentifier {
	return ModuleComponentIdentifier{module: module}
}

// ModuleVersion returns the module coordinates.
func (c ModuleComponentIdentifier) ModuleVersion() ModuleVersionIdentifier {
	return c.module
}

// DisplayName returns the module coordinates as "group:name:version".
func (c ModuleComponentIdentifier) DisplayName() string {
	return c.module.DisplayName()
}

// ProjectComponentIdentifier is the default ProjectComponent
// implementation.
type ProjectComponentIdentifier struct {
	projectPath string
}

// NewProjectComponentIdentifier returns the component identifier for a
// project path such as ":lib:core".
func NewProjectComponentIdentifier(projectPath string) ProjectComponentIdentifier {
	return ProjectComponentIdentifier{projectPath: projectPath}
}

// ProjectPath returns the project path.
func (c ProjectComponentIdentifier) ProjectPath() string {
	return c.projectPath
}

// DisplayName returns "project <path>".
func (c ProjectComponentIdentifier) DisplayName() string {
	return "project " + c.projectPath
}

// OpaqueFileComponentIdentifier is the default FileComponent
// implementation.
type OpaqueFileComponentIdentifier struct {
	file string
}

// NewOpaqueFileComponentIdentifier returns the component identifier
// for a bare file.
func NewOpaqueFileComponentIdentifier(file string) OpaqueFileComponentIdentifier {
	return OpaqueFileComponentIdentifier{file: file}
}

// File returns the file path.
func (c OpaqueFileComponentIdentifier) File() string {
	return c.file
}

// DisplayName returns the file path.
func (c OpaqueFileComponentIdentifier) DisplayName() string {
	return c.file
}
