// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

import "fmt"

// Schema is the attribute naming registry: it maps attribute names to
// their declared kinds and, for named kinds, the domain type the
// instance names belong to.
//
// The wire format desugars attribute values — a named value is written
// as its bare instance name — so decoding needs the schema to restore
// full typing. Attributes absent from the schema decode with whatever
// kind the wire carries.
//
// A Schema is populated at configuration time and read-only
// afterwards; it is safe for unsynchronized concurrent reads once
// population is complete.
type Schema struct {
	declarations map[string]schemaDeclaration
}

type schemaDeclaration struct {
	kind      AttributeKind
	namedType string
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{declarations: make(map[string]schemaDeclaration)}
}

// Declare records the kind of an attribute. Named attributes must use
// [Schema.DeclareNamed] so the type name is captured. Re-declaring an
// attribute replaces the earlier declaration.
func (s *Schema) Declare(name string, kind AttributeKind) error {
	if kind == KindNamed {
		return fmt.Errorf("attribute %q: named attributes require DeclareNamed", name)
	}
	s.declarations[name] = schemaDeclaration{kind: kind}
	return nil
}

// DeclareNamed records that an attribute holds instances of the domain
// type called typeName.
func (s *Schema) DeclareNamed(name, typeName string) error {
	if typeName == "" {
		return fmt.Errorf("attribute %q: named type name is empty", name)
	}
	s.declarations[name] = schemaDeclaration{kind: KindNamed, namedType: typeName}
	return nil
}

// Kind returns the declared kind of an attribute.
func (s *Schema) Kind(name string) (AttributeKind, bool) {
	declaration, ok := s.declarations[name]
	return declaration.kind, ok
}

// NamedType returns the domain type name of a named attribute; ok is
// false if the attribute is undeclared or not named.
func (s *Schema) NamedType(name string) (string, bool) {
	declaration, ok := s.declarations[name]
	if !ok || declaration.kind != KindNamed {
		return "", false
	}
	return declaration.namedType, true
}

// Len returns the number of declared attributes.
func (s *Schema) Len() int {
	return len(s.declarations)
}
