// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"

	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/stream"
)

// Desugared attribute payload tags. Named values never appear on the
// wire: they are desugared to their instance name and carried under
// the string tag. Protocol constants.
const (
	attributeTagString byte = 0
	attributeTagBool   byte = 1
	attributeTagInt    byte = 2
)

// AttributeContainerCodec encodes a container as a count followed by
// (name, payload tag, payload) triples in container order.
//
// Encoding desugars: a named value is written as a plain string
// holding its instance name. Decoding re-sugars through the attribute
// schema — a string payload whose attribute is declared named becomes
// a named value of the declared type again. Attributes the schema does
// not know keep the kind the wire carries, so foreign metadata decodes
// rather than failing.
//
// The reconstructed container is built through the attributes factory;
// a factory rejection (duplicate names) is a decode failure and no
// partial container escapes.
type AttributeContainerCodec struct {
	factory depmodel.AttributesFactory
	schema  *depmodel.Schema
}

// NewAttributeContainerCodec returns a codec using factory for
// container construction and schema for re-sugaring named values.
func NewAttributeContainerCodec(factory depmodel.AttributesFactory, schema *depmodel.Schema) *AttributeContainerCodec {
	return &AttributeContainerCodec{factory: factory, schema: schema}
}

// Encode implements Codec[depmodel.AttributeContainer].
func (c *AttributeContainerCodec) Encode(writer *stream.Writer, value depmodel.AttributeContainer) error {
	entries := value.Entries()
	if err := writer.WriteUint32(uint32(len(entries))); err != nil {
		return fmt.Errorf("attribute count: %w", err)
	}
	for _, entry := range entries {
		if err := writer.WriteString(entry.Name); err != nil {
			return fmt.Errorf("attribute %q name: %w", entry.Name, err)
		}
		if err := c.encodeValue(writer, entry); err != nil {
			return fmt.Errorf("attribute %q value: %w", entry.Name, err)
		}
	}
	return nil
}

func (c *AttributeContainerCodec) encodeValue(writer *stream.Writer, entry depmodel.Attribute) error {
	switch entry.Value.Kind() {
	case depmodel.KindString:
		text, _ := entry.Value.AsString()
		if err := writer.WriteByte(attributeTagString); err != nil {
			return err
		}
		return writer.WriteString(text)

	case depmodel.KindNamed:
		// Desugar: only the instance name crosses the wire; the type
		// comes back from the schema at decode time.
		_, name, _ := entry.Value.AsNamed()
		if err := writer.WriteByte(attributeTagString); err != nil {
			return err
		}
		return writer.WriteString(name)

	case depmodel.KindBool:
		flag, _ := entry.Value.AsBool()
		if err := writer.WriteByte(attributeTagBool); err != nil {
			return err
		}
		return writer.WriteBool(flag)

	case depmodel.KindInt:
		number, _ := entry.Value.AsInt()
		if err := writer.WriteByte(attributeTagInt); err != nil {
			return err
		}
		return writer.WriteUint64(uint64(number))

	default:
		return fmt.Errorf("attribute kind %v has no wire form: %w", entry.Value.Kind(), ErrUnsupportedType)
	}
}

// Decode implements Codec[depmodel.AttributeContainer].
func (c *AttributeContainerCodec) Decode(reader *stream.Reader) (depmodel.AttributeContainer, error) {
	var zero depmodel.AttributeContainer
	count, err := reader.ReadUint32()
	if err != nil {
		return zero, fmt.Errorf("attribute count: %w", err)
	}
	// Cap the pre-allocation: the count comes off the wire and a
	// corrupted prefix must not translate into a giant allocation
	// before the first element read fails.
	entries := make([]depmodel.Attribute, 0, min(count, 1024))
	for i := uint32(0); i < count; i++ {
		name, err := reader.ReadString()
		if err != nil {
			return zero, fmt.Errorf("attribute %d name: %w", i, err)
		}
		value, err := c.decodeValue(reader, name)
		if err != nil {
			return zero, fmt.Errorf("attribute %q value: %w", name, err)
		}
		entries = append(entries, depmodel.Attribute{Name: name, Value: value})
	}
	container, err := c.factory.Container(entries)
	if err != nil {
		return zero, fmt.Errorf("reconstructing attribute container: %w", err)
	}
	return container, nil
}

func (c *AttributeContainerCodec) decodeValue(reader *stream.Reader, name string) (depmodel.AttributeValue, error) {
	tag, err := reader.ReadByte()
	if err != nil {
		return depmodel.AttributeValue{}, err
	}
	switch tag {
	case attributeTagString:
		text, err := reader.ReadString()
		if err != nil {
			return depmodel.AttributeValue{}, err
		}
		if typeName, ok := c.schema.NamedType(name); ok {
			return depmodel.NamedValue(typeName, text), nil
		}
		return depmodel.StringValue(text), nil

	case attributeTagBool:
		flag, err := reader.ReadBool()
		if err != nil {
			return depmodel.AttributeValue{}, err
		}
		return depmodel.BoolValue(flag), nil

	case attributeTagInt:
		number, err := reader.ReadUint64()
		if err != nil {
			return depmodel.AttributeValue{}, err
		}
		return depmodel.IntValue(int64(number)), nil

	default:
		return depmodel.AttributeValue{}, fmt.Errorf("attribute payload tag 0x%02x is unknown: %w", tag, stream.ErrMalformedStream)
	}
}
