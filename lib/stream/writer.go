// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxStringLength is the largest string the wire format accepts, on
// both the encode and decode side. The limit exists so a corrupted
// length prefix cannot make the reader attempt a multi-gigabyte
// allocation. One GiB is far beyond any real dependency-metadata
// string.
const MaxStringLength = 1 << 30

// Writer encodes primitives to an underlying io.Writer. The Writer
// does not buffer: every call translates to writes on the underlying
// stream, so callers wanting buffering should wrap the destination in
// a bufio.Writer themselves.
//
// A Writer is exclusively owned by one encode call chain at a time;
// it is not safe for concurrent use.
type Writer struct {
	writer io.Writer
}

// NewWriter returns a Writer encoding to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: w}
}

// WriteUint32 writes a fixed-width little-endian uint32.
func (w *Writer) WriteUint32(value uint32) error {
	var buffer [4]byte
	binary.LittleEndian.PutUint32(buffer[:], value)
	if _, err := w.writer.Write(buffer[:]); err != nil {
		return fmt.Errorf("writing u32: %w", err)
	}
	return nil
}

// WriteUint64 writes a fixed-width little-endian uint64.
func (w *Writer) WriteUint64(value uint64) error {
	var buffer [8]byte
	binary.LittleEndian.PutUint64(buffer[:], value)
	if _, err := w.writer.Write(buffer[:]); err != nil {
		return fmt.Errorf("writing u64: %w", err)
	}
	return nil
}

// WriteByte writes a single byte.
func (w *Writer) WriteByte(value byte) error {
	if _, err := w.writer.Write([]byte{value}); err != nil {
		return fmt.Errorf("writing byte: %w", err)
	}
	return nil
}

// WriteBool writes a bool as one byte: 1 for true, 0 for false.
func (w *Writer) WriteBool(value bool) error {
	var b byte
	if value {
		b = 1
	}
	return w.WriteByte(b)
}

// WriteString writes a non-nullable string: a u32 byte-length prefix
// followed by the UTF-8 bytes. Strings longer than [MaxStringLength]
// are rejected rather than silently truncated.
func (w *Writer) WriteString(value string) error {
	if len(value) > MaxStringLength {
		return fmt.Errorf("string of %d bytes exceeds wire format limit %d", len(value), MaxStringLength)
	}
	if err := w.WriteUint32(uint32(len(value))); err != nil {
		return fmt.Errorf("writing string length: %w", err)
	}
	if _, err := io.WriteString(w.writer, value); err != nil {
		return fmt.Errorf("writing string bytes: %w", err)
	}
	return nil
}

// WriteBytes writes a length-prefixed byte slice. The limit from
// [MaxStringLength] applies to byte slices as well.
func (w *Writer) WriteBytes(value []byte) error {
	if len(value) > MaxStringLength {
		return fmt.Errorf("byte slice of %d bytes exceeds wire format limit %d", len(value), MaxStringLength)
	}
	if err := w.WriteUint32(uint32(len(value))); err != nil {
		return fmt.Errorf("writing byte slice length: %w", err)
	}
	if _, err := w.writer.Write(value); err != nil {
		return fmt.Errorf("writing byte slice: %w", err)
	}
	return nil
}

// WriteNullableString writes a one-byte presence flag, then the string
// if present. An absent string writes exactly one zero byte; the value
// argument is ignored when present is false.
func (w *Writer) WriteNullableString(value string, present bool) error {
	if err := w.WriteBool(present); err != nil {
		return fmt.Errorf("writing presence flag: %w", err)
	}
	if !present {
		return nil
	}
	return w.WriteString(value)
}
