// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

import "fmt"

// AttributeKind identifies the type of an attribute value.
type AttributeKind uint8

const (
	// KindString is a plain string attribute.
	KindString AttributeKind = 0

	// KindBool is a boolean attribute.
	KindBool AttributeKind = 1

	// KindInt is a 64-bit integer attribute.
	KindInt AttributeKind = 2

	// KindNamed is an instance of a named domain type (for example a
	// "usage" or "category" object), identified by the type name and
	// the instance name. On the wire a named value is desugared to
	// its instance name; the attribute schema restores the type at
	// decode time.
	KindNamed AttributeKind = 3
)

// String returns the lower-case kind name.
func (k AttributeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// AttributeValue is a typed attribute value: a string, bool, int, or
// named-type instance. The zero value is the empty string.
// AttributeValue is comparable.
type AttributeValue struct {
	kind     AttributeKind
	typeName string
	text     string
	boolean  bool
	integer  int64
}

// StringValue returns a string attribute value.
func StringValue(value string) AttributeValue {
	return AttributeValue{kind: KindString, text: value}
}

// BoolValue returns a boolean attribute value.
func BoolValue(value bool) AttributeValue {
	return AttributeValue{kind: KindBool, boolean: value}
}

// IntValue returns an integer attribute value.
func IntValue(value int64) AttributeValue {
	return AttributeValue{kind: KindInt, integer: value}
}

// NamedValue returns a named-type attribute value: the instance called
// name of the domain type called typeName.
func NamedValue(typeName, name string) AttributeValue {
	return AttributeValue{kind: KindNamed, typeName: typeName, text: name}
}

// Kind returns the value's kind.
func (v AttributeValue) Kind() AttributeKind {
	return v.kind
}

// AsString returns the string payload; ok is false for non-string
// kinds.
func (v AttributeValue) AsString() (value string, ok bool) {
	return v.text, v.kind == KindString
}

// AsBool returns the boolean payload; ok is false for non-bool kinds.
func (v AttributeValue) AsBool() (value, ok bool) {
	return v.boolean, v.kind == KindBool
}

// AsInt returns the integer payload; ok is false for non-int kinds.
func (v AttributeValue) AsInt() (value int64, ok bool) {
	return v.integer, v.kind == KindInt
}

// AsNamed returns the type name and instance name of a named value;
// ok is false for other kinds.
func (v AttributeValue) AsNamed() (typeName, name string, ok bool) {
	return v.typeName, v.text, v.kind == KindNamed
}

// String returns the value's display form.
func (v AttributeValue) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.boolean)
	case KindInt:
		return fmt.Sprintf("%d", v.integer)
	case KindNamed:
		return v.typeName + "(" + v.text + ")"
	default:
		return v.text
	}
}

// Attribute is one (name, value) pair in an attribute container.
type Attribute struct {
	// Name is the attribute's fully qualified name, for example
	// "org.example.usage".
	Name string

	// Value is the attribute's typed value.
	Value AttributeValue
}

// AttributeContainer is an ordered, immutable set of attributes.
// Iteration order is construction order; the wire format depends on
// it, so containers never re-sort their entries.
type AttributeContainer struct {
	entries []Attribute
}

// Len returns the number of attributes.
func (c AttributeContainer) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the container has no attributes.
func (c AttributeContainer) IsEmpty() bool {
	return len(c.entries) == 0
}

// Entries returns the attributes in construction order. The returned
// slice is a copy; mutating it does not affect the container.
func (c AttributeContainer) Entries() []Attribute {
	out := make([]Attribute, len(c.entries))
	copy(out, c.entries)
	return out
}

// Value returns the value of the named attribute.
func (c AttributeContainer) Value(name string) (AttributeValue, bool) {
	for _, entry := range c.entries {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return AttributeValue{}, false
}

// Equal reports field-wise equality, including entry order.
func (c AttributeContainer) Equal(other AttributeContainer) bool {
	if len(c.entries) != len(other.entries) {
		return false
	}
	for i, entry := range c.entries {
		if entry != other.entries[i] {
			return false
		}
	}
	return true
}

// AttributesFactory constructs immutable attribute containers during
// decode. Like ModuleIdentifierFactory it exists so deployments can
// intern or validate containers without touching the codecs.
// Implementations must be safe for concurrent use.
type AttributesFactory interface {
	// Container builds a container from entries, preserving order.
	// Duplicate attribute names are a construction error.
	Container(entries []Attribute) (AttributeContainer, error)
}

// DefaultAttributesFactory is the plain AttributesFactory: it copies
// the entries and rejects duplicates.
type DefaultAttributesFactory struct{}

// Container implements AttributesFactory.
func (DefaultAttributesFactory) Container(entries []Attribute) (AttributeContainer, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.Name]; dup {
			return AttributeContainer{}, fmt.Errorf("duplicate attribute %q", entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	copied := make([]Attribute, len(entries))
	copy(copied, entries)
	return AttributeContainer{entries: copied}, nil
}
