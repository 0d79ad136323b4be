// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"

	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/stream"
)

// LocalArtifactIdentifierCodec encodes a local artifact identifier as
// the owning component (delegated to the component codec) followed by
// the descriptor fields: name, type, extension, nullable classifier,
// canonical file path.
//
// The file path is canonicalized at encode time so decoded metadata
// never depends on the encoding process's working directory.
// Canonicalization touches the filesystem and can fail; that failure
// is an encode error, never a silent fall back to the raw path.
type LocalArtifactIdentifierCodec struct {
	components *ComponentIdentifierCodec
}

// NewLocalArtifactIdentifierCodec returns a codec delegating component
// encoding to components.
func NewLocalArtifactIdentifierCodec(components *ComponentIdentifierCodec) *LocalArtifactIdentifierCodec {
	return &LocalArtifactIdentifierCodec{components: components}
}

// Encode implements Codec[depmodel.LocalArtifactIdentifier].
func (c *LocalArtifactIdentifierCodec) Encode(writer *stream.Writer, value depmodel.LocalArtifactIdentifier) error {
	if err := c.components.Encode(writer, value.ComponentIdentifier()); err != nil {
		return fmt.Errorf("local artifact component: %w", err)
	}
	descriptor := value.Descriptor()
	if err := writer.WriteString(descriptor.Name()); err != nil {
		return fmt.Errorf("local artifact name: %w", err)
	}
	if err := writer.WriteString(descriptor.Type()); err != nil {
		return fmt.Errorf("local artifact type: %w", err)
	}
	if err := writer.WriteString(descriptor.Extension()); err != nil {
		return fmt.Errorf("local artifact extension: %w", err)
	}
	classifier, present := descriptor.Classifier()
	if err := writer.WriteNullableString(classifier, present); err != nil {
		return fmt.Errorf("local artifact classifier: %w", err)
	}
	canonical, err := depmodel.CanonicalPath(descriptor.File())
	if err != nil {
		return fmt.Errorf("local artifact file: %w", err)
	}
	if err := writer.WriteString(canonical); err != nil {
		return fmt.Errorf("local artifact file: %w", err)
	}
	return nil
}

// Decode implements Codec[depmodel.LocalArtifactIdentifier].
func (c *LocalArtifactIdentifierCodec) Decode(reader *stream.Reader) (depmodel.LocalArtifactIdentifier, error) {
	var zero depmodel.LocalArtifactIdentifier
	component, err := c.components.Decode(reader)
	if err != nil {
		return zero, fmt.Errorf("local artifact component: %w", err)
	}
	name, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("local artifact name: %w", err)
	}
	artifactType, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("local artifact type: %w", err)
	}
	extension, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("local artifact extension: %w", err)
	}
	classifier, hasClassifier, err := reader.ReadNullableString()
	if err != nil {
		return zero, fmt.Errorf("local artifact classifier: %w", err)
	}
	file, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("local artifact file: %w", err)
	}
	descriptor := depmodel.NewArtifactDescriptor(name, artifactType, extension, file)
	if hasClassifier {
		descriptor = descriptor.WithClassifier(classifier)
	}
	return depmodel.NewLocalArtifactIdentifier(component, descriptor), nil
}

// OpaqueArtifactIdentifierCodec encodes the minimal artifact variant:
// the canonical file path and nothing else. It is the terminal codec
// of the artifact family, with no delegated sub-codec.
type OpaqueArtifactIdentifierCodec struct{}

// Encode implements Codec[depmodel.OpaqueArtifactIdentifier].
func (OpaqueArtifactIdentifierCodec) Encode(writer *stream.Writer, value depmodel.OpaqueArtifactIdentifier) error {
	canonical, err := depmodel.CanonicalPath(value.File())
	if err != nil {
		return fmt.Errorf("opaque artifact file: %w", err)
	}
	if err := writer.WriteString(canonical); err != nil {
		return fmt.Errorf("opaque artifact file: %w", err)
	}
	return nil
}

// Decode implements Codec[depmodel.OpaqueArtifactIdentifier].
func (OpaqueArtifactIdentifierCodec) Decode(reader *stream.Reader) (depmodel.OpaqueArtifactIdentifier, error) {
	file, err := reader.ReadString()
	if err != nil {
		return depmodel.OpaqueArtifactIdentifier{}, fmt.Errorf("opaque artifact file: %w", err)
	}
	return depmodel.NewOpaqueArtifactIdentifier(file), nil
}

// ModuleArtifactIdentifierCodec encodes an external module artifact:
// the owning module component (delegated to the component codec)
// followed by name, type, extension, nullable classifier. There is no
// file path — module artifacts are identified by coordinates alone.
type ModuleArtifactIdentifierCodec struct {
	components *ComponentIdentifierCodec
}

// NewModuleArtifactIdentifierCodec returns a codec delegating
// component encoding to components.
func NewModuleArtifactIdentifierCodec(components *ComponentIdentifierCodec) *ModuleArtifactIdentifierCodec {
	return &ModuleArtifactIdentifierCodec{components: components}
}

// Encode implements Codec[depmodel.ModuleArtifactIdentifier].
func (c *ModuleArtifactIdentifierCodec) Encode(writer *stream.Writer, value depmodel.ModuleArtifactIdentifier) error {
	if err := c.components.Encode(writer, value.ModuleComponent()); err != nil {
		return fmt.Errorf("module artifact component: %w", err)
	}
	if err := writer.WriteString(value.Name()); err != nil {
		return fmt.Errorf("module artifact name: %w", err)
	}
	if err := writer.WriteString(value.Type()); err != nil {
		return fmt.Errorf("module artifact type: %w", err)
	}
	if err := writer.WriteString(value.Extension()); err != nil {
		return fmt.Errorf("module artifact extension: %w", err)
	}
	classifier, present := value.Classifier()
	if err := writer.WriteNullableString(classifier, present); err != nil {
		return fmt.Errorf("module artifact classifier: %w", err)
	}
	return nil
}

// Decode implements Codec[depmodel.ModuleArtifactIdentifier].
func (c *ModuleArtifactIdentifierCodec) Decode(reader *stream.Reader) (depmodel.ModuleArtifactIdentifier, error) {
	var zero depmodel.ModuleArtifactIdentifier
	component, err := c.components.Decode(reader)
	if err != nil {
		return zero, fmt.Errorf("module artifact component: %w", err)
	}
	module, ok := component.(depmodel.ModuleComponentIdentifier)
	if !ok {
		return zero, fmt.Errorf("module artifact owner decoded as %T, want module component: %w",
			component, stream.ErrMalformedStream)
	}
	name, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("module artifact name: %w", err)
	}
	artifactType, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("module artifact type: %w", err)
	}
	extension, err := reader.ReadString()
	if err != nil {
		return zero, fmt.Errorf("module artifact extension: %w", err)
	}
	classifier, hasClassifier, err := reader.ReadNullableString()
	if err != nil {
		return zero, fmt.Errorf("module artifact classifier: %w", err)
	}
	artifact := depmodel.NewModuleArtifactIdentifier(module, name, artifactType, extension)
	if hasClassifier {
		artifact = artifact.WithClassifier(classifier)
	}
	return artifact, nil
}
