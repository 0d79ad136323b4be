// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// ErrPathResolution reports that canonicalizing an artifact file path
// failed. Encoding an artifact identifier canonicalizes its path, so
// this error surfaces from encode calls, never decode.
var ErrPathResolution = errors.New("path resolution failed")

// CanonicalPath returns the canonical absolute form of path: absolute,
// lexically cleaned, with symlinks resolved when the path exists on
// disk. Paths that do not exist yet are still canonicalized lexically
// (artifacts are frequently described before they are built). Any
// other filesystem error wraps [ErrPathResolution].
//
// Encoded metadata always carries canonical paths so that decoding is
// independent of the process working directory.
func CanonicalPath(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("canonicalizing %q: %w: %w", path, ErrPathResolution, err)
	}
	resolved, err := filepath.EvalSymlinks(absolute)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return absolute, nil
		}
		return "", fmt.Errorf("canonicalizing %q: %w: %w", path, ErrPathResolution, err)
	}
	return resolved, nil
}

// ArtifactIdentifier names one concrete artifact of a resolved
// component.
type ArtifactIdentifier interface {
	// DisplayName returns a human-readable identifier for the
	// artifact.
	DisplayName() string
	// ComponentIdentifier returns the component that owns the
	// artifact.
	ComponentIdentifier() ComponentIdentifier
}

// ArtifactDescriptor describes one published artifact: its name, type
// and extension, an optional classifier, and the file providing it.
type ArtifactDescriptor struct {
	name          string
	artifactType  string
	extension     string
	classifier    string
	hasClassifier bool
	file          string
}

// NewArtifactDescriptor returns a descriptor with no classifier.
func NewArtifactDescriptor(name, artifactType, extension, file string) ArtifactDescriptor {
	return ArtifactDescriptor{name: name, artifactType: artifactType, extension: extension, file: file}
}

// WithClassifier returns a copy of the descriptor with the classifier
// set. An empty classifier is a valid, present classifier — distinct
// from no classifier at all.
func (d ArtifactDescriptor) WithClassifier(classifier string) ArtifactDescriptor {
	d.classifier = classifier
	d.hasClassifier = true
	return d
}

// Name returns the artifact name.
func (d ArtifactDescriptor) Name() string {
	return d.name
}

// Type returns the artifact type (for example "jar" or "aar").
func (d ArtifactDescriptor) Type() string {
	return d.artifactType
}

// Extension returns the file extension.
func (d ArtifactDescriptor) Extension() string {
	return d.extension
}

// Classifier returns the classifier and whether one is set.
func (d ArtifactDescriptor) Classifier() (string, bool) {
	return d.classifier, d.hasClassifier
}

// File returns the path of the file providing the artifact, exactly
// as the descriptor was constructed with. Canonicalization happens at
// encode time, not construction time.
func (d ArtifactDescriptor) File() string {
	return d.file
}

// LocalArtifactIdentifier pairs a component identifier with a full
// artifact descriptor. It is the richest artifact identifier variant,
// used for artifacts published by the local build.
type LocalArtifactIdentifier struct {
	component  ComponentIdentifier
	descriptor ArtifactDescriptor
}

// NewLocalArtifactIdentifier returns the identifier for an artifact
// published by component.
func NewLocalArtifactIdentifier(component ComponentIdentifier, descriptor ArtifactDescriptor) LocalArtifactIdentifier {
	return LocalArtifactIdentifier{component: component, descriptor: descriptor}
}

// ComponentIdentifier returns the owning component.
func (a LocalArtifactIdentifier) ComponentIdentifier() ComponentIdentifier {
	return a.component
}

// Descriptor returns the artifact descriptor.
func (a LocalArtifactIdentifier) Descriptor() ArtifactDescriptor {
	return a.descriptor
}

// DisplayName returns "<artifact name> (<component display name>)".
func (a LocalArtifactIdentifier) DisplayName() string {
	return a.descriptor.name + " (" + a.component.DisplayName() + ")"
}

// OpaqueArtifactIdentifier identifies an artifact by file path alone.
// It is the minimal variant, used when no richer metadata exists.
type OpaqueArtifactIdentifier struct {
	file string
}

// NewOpaqueArtifactIdentifier returns the identifier for a bare file.
func NewOpaqueArtifactIdentifier(file string) OpaqueArtifactIdentifier {
	return OpaqueArtifactIdentifier{file: file}
}

// File returns the file path.
func (a OpaqueArtifactIdentifier) File() string {
	return a.file
}

// ComponentIdentifier returns a file component derived from the path;
// an opaque artifact has no owning component of its own.
func (a OpaqueArtifactIdentifier) ComponentIdentifier() ComponentIdentifier {
	return NewOpaqueFileComponentIdentifier(a.file)
}

// DisplayName returns the file path.
func (a OpaqueArtifactIdentifier) DisplayName() string {
	return a.file
}

// ModuleArtifactIdentifier identifies an artifact of an external
// module component by its coordinates, without a local file.
type ModuleArtifactIdentifier struct {
	component     ModuleComponentIdentifier
	name          string
	artifactType  string
	extension     string
	classifier    string
	hasClassifier bool
}

// NewModuleArtifactIdentifier returns the identifier for an artifact
// of an external module component.
func NewModuleArtifactIdentifier(component ModuleComponentIdentifier, name, artifactType, extension string) ModuleArtifactIdentifier {
	return ModuleArtifactIdentifier{component: component, name: name, artifactType: artifactType, extension: extension}
}

// WithClassifier returns a copy of the identifier with the classifier
// set.
func (a ModuleArtifactIdentifier) WithClassifier(classifier string) ModuleArtifactIdentifier {
	a.classifier = classifier
	a.hasClassifier = true
	return a
}

// ModuleComponent returns the owning module component.
func (a ModuleArtifactIdentifier) ModuleComponent() ModuleComponentIdentifier {
	return a.component
}

// ComponentIdentifier returns the owning component.
func (a ModuleArtifactIdentifier) ComponentIdentifier() ComponentIdentifier {
	return a.component
}

// Name returns the artifact name.
func (a ModuleArtifactIdentifier) Name() string {
	return a.name
}

// Type returns the artifact type.
func (a ModuleArtifactIdentifier) Type() string {
	return a.artifactType
}

// Extension returns the file extension.
func (a ModuleArtifactIdentifier) Extension() string {
	return a.extension
}

// Classifier returns the classifier and whether one is set.
func (a ModuleArtifactIdentifier) Classifier() (string, bool) {
	return a.classifier, a.hasClassifier
}

// DisplayName returns "<artifact name>.<extension> (<component>)".
func (a ModuleArtifactIdentifier) DisplayName() string {
	return a.name + "." + a.extension + " (" + a.component.DisplayName() + ")"
}
