// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"fmt"
	"reflect"

	"github.com/depforge/depforge/lib/codec"
	"github.com/depforge/depforge/lib/stream"
)

// FallbackPolicy controls what a lookup does when the requested type
// matches no registered base type.
type FallbackPolicy uint8

const (
	// FallbackSerialize hands unmatched types a self-describing CBOR
	// codec, so plain values (strings, numbers, maps) that need no
	// special field handling still round-trip. This is the default.
	FallbackSerialize FallbackPolicy = 0

	// FallbackStrict fails the lookup with ErrUnsupportedType. Use
	// this when an unmatched type can only mean misconfiguration.
	FallbackStrict FallbackPolicy = 1
)

// Registry maps declared base types to codecs. Build it once at
// configuration time — Register is not synchronized — then share it
// freely: lookups are pure reads.
type Registry struct {
	policy  FallbackPolicy
	entries []registration
}

type registration struct {
	baseType reflect.Type
	codec    erasedCodec
}

// NewRegistry returns an empty registry with the given fallback
// policy.
func NewRegistry(policy FallbackPolicy) *Registry {
	return &Registry{policy: policy}
}

// Register associates base type T with codec. Re-registering a base
// type replaces its codec but keeps the base's original position in
// the lookup order: precedence among bases is fixed by first
// registration, while the codec itself is last-registration-wins.
func Register[T any](registry *Registry, registered Codec[T]) {
	baseType := reflect.TypeOf((*T)(nil)).Elem()
	wrapped := eraser[T]{codec: registered}
	for i := range registry.entries {
		if registry.entries[i].baseType == baseType {
			registry.entries[i].codec = wrapped
			return
		}
	}
	registry.entries = append(registry.entries, registration{baseType: baseType, codec: wrapped})
}

// CanHandle reports whether requested equals, or is assignable to,
// some registered base type. The fallback policy does not influence
// the answer: CanHandle describes the registered set, not what a
// lookup would ultimately hand back.
func (r *Registry) CanHandle(requested reflect.Type) bool {
	_, ok := r.lookup(requested)
	return ok
}

// For returns the codec usable for type T.
//
// Resolution walks the registered base types in registration order and
// picks the first one T is identical or assignable to. The scan is
// deliberately not sorted by specificity: when T satisfies several
// bases, the earliest registration wins, deterministically. If no base
// matches, the registry's fallback policy decides between a CBOR
// serialization codec and a lookup failure.
func For[T any](registry *Registry) (Codec[T], error) {
	requested := reflect.TypeOf((*T)(nil)).Elem()
	if matched, ok := registry.lookup(requested); ok {
		if direct, ok := matched.unwrap().(Codec[T]); ok {
			return direct, nil
		}
		return subtypeCodec[T]{codec: matched}, nil
	}

	switch registry.policy {
	case FallbackStrict:
		return nil, fmt.Errorf("no codec registered for %v: %w", requested, ErrUnsupportedType)
	default:
		return serializeCodec[T]{}, nil
	}
}

// lookup returns the codec of the first registered base that requested
// is identical or assignable to.
func (r *Registry) lookup(requested reflect.Type) (erasedCodec, bool) {
	for _, entry := range r.entries {
		if assignableTo(requested, entry.baseType) {
			return entry.codec, true
		}
	}
	return nil, false
}

// assignableTo reports whether requested resolves to base: type
// identity, interface satisfaction for interface bases, or plain
// assignability otherwise.
func assignableTo(requested, base reflect.Type) bool {
	if requested == base {
		return true
	}
	if base.Kind() == reflect.Interface {
		return requested.Implements(base)
	}
	return requested.AssignableTo(base)
}

// serializeCodec is the FallbackSerialize codec: the value is encoded
// as a length-prefixed CBOR document. CBOR is self-describing, so no
// per-type field order needs to exist for types the registry has never
// heard of.
type serializeCodec[T any] struct{}

func (serializeCodec[T]) Encode(writer *stream.Writer, value T) error {
	data, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("fallback encoding %T: %w", value, err)
	}
	return writer.WriteBytes(data)
}

func (serializeCodec[T]) Decode(reader *stream.Reader) (T, error) {
	var value T
	data, err := reader.ReadBytes()
	if err != nil {
		return value, err
	}
	if err := codec.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("fallback decoding %v: %w", reflect.TypeOf((*T)(nil)).Elem(), err)
	}
	return value, nil
}
