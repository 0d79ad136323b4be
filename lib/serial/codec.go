// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package serial

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/depforge/depforge/lib/stream"
)

// ErrUnsupportedType reports a lookup or encode for a type outside the
// registry's closed set (under the strict fallback policy), or a value
// whose variant the matched codec cannot represent on the wire.
var ErrUnsupportedType = errors.New("unsupported type")

// Codec encodes and decodes values of one base type. Encode writes
// the value's fields to the stream in the codec's fixed field order;
// Decode reads the same fields in the same order and reconstructs the
// value.
//
// Implementations must not retain the Writer or Reader beyond the
// call: the stream is exclusively owned by the caller.
type Codec[T any] interface {
	Encode(writer *stream.Writer, value T) error
	Decode(reader *stream.Reader) (T, error)
}

// erasedCodec is the registry's internal type-erased view of a
// registered codec.
type erasedCodec interface {
	encode(writer *stream.Writer, value any) error
	decode(reader *stream.Reader) (any, error)
	// unwrap returns the original Codec[T] so that a lookup for the
	// exact registered base type can hand it back without an adapter.
	unwrap() any
}

// eraser adapts a Codec[T] to erasedCodec.
type eraser[T any] struct {
	codec Codec[T]
}

func (e eraser[T]) encode(writer *stream.Writer, value any) error {
	typed, ok := value.(T)
	if !ok {
		return fmt.Errorf("value of type %T is not assignable to registered base %v: %w",
			value, reflect.TypeOf((*T)(nil)).Elem(), ErrUnsupportedType)
	}
	return e.codec.Encode(writer, typed)
}

func (e eraser[T]) decode(reader *stream.Reader) (any, error) {
	return e.codec.Decode(reader)
}

func (e eraser[T]) unwrap() any {
	return e.codec
}

// subtypeCodec adapts a codec registered for a base type to the
// Codec[T] of a narrower requested type T. Encoding widens T to the
// base; decoding asserts the reconstructed value back down to T and
// fails if the stream held a different variant of the same base.
type subtypeCodec[T any] struct {
	codec erasedCodec
}

func (c subtypeCodec[T]) Encode(writer *stream.Writer, value T) error {
	return c.codec.encode(writer, value)
}

func (c subtypeCodec[T]) Decode(reader *stream.Reader) (T, error) {
	var zero T
	value, err := c.codec.decode(reader)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("decoded value of type %T is not %v: %w",
			value, reflect.TypeOf((*T)(nil)).Elem(), ErrUnsupportedType)
	}
	return typed, nil
}
