// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrMalformedStream reports input that does not decode as the wire
// format: truncated data, a length prefix beyond [MaxStringLength], or
// a presence flag that is neither 0 nor 1. Every read-side error wraps
// this sentinel, so errors.Is(err, ErrMalformedStream) classifies any
// decode failure originating in this package.
var ErrMalformedStream = errors.New("malformed stream")

// Reader decodes primitives from an underlying io.Reader. Like
// [Writer], it performs no buffering of its own and is not safe for
// concurrent use.
type Reader struct {
	reader io.Reader
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: r}
}

// ReadUint32 reads a fixed-width little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	var buffer [4]byte
	if _, err := io.ReadFull(r.reader, buffer[:]); err != nil {
		return 0, fmt.Errorf("reading u32: %w: %w", ErrMalformedStream, err)
	}
	return binary.LittleEndian.Uint32(buffer[:]), nil
}

// ReadUint64 reads a fixed-width little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	var buffer [8]byte
	if _, err := io.ReadFull(r.reader, buffer[:]); err != nil {
		return 0, fmt.Errorf("reading u64: %w: %w", ErrMalformedStream, err)
	}
	return binary.LittleEndian.Uint64(buffer[:]), nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	var buffer [1]byte
	if _, err := io.ReadFull(r.reader, buffer[:]); err != nil {
		return 0, fmt.Errorf("reading byte: %w: %w", ErrMalformedStream, err)
	}
	return buffer[0], nil
}

// ReadBool reads a bool encoded as one byte. Any value other than 0
// or 1 is malformed: the flag bytes double as a cheap corruption
// check, so lenient "non-zero is true" decoding would mask stream
// desynchronization.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("bool byte is 0x%02x, want 0 or 1: %w", b, ErrMalformedStream)
	}
}

// ReadString reads a length-prefixed string written by
// [Writer.WriteString].
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return "", fmt.Errorf("reading string length: %w", err)
	}
	if length > MaxStringLength {
		return "", fmt.Errorf("string length prefix %d exceeds limit %d: %w", length, MaxStringLength, ErrMalformedStream)
	}
	if length == 0 {
		return "", nil
	}
	buffer := make([]byte, length)
	if _, err := io.ReadFull(r.reader, buffer); err != nil {
		return "", fmt.Errorf("reading %d string bytes: %w: %w", length, ErrMalformedStream, err)
	}
	return string(buffer), nil
}

// ReadBytes reads a length-prefixed byte slice written by
// [Writer.WriteBytes].
func (r *Reader) ReadBytes() ([]byte, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading byte slice length: %w", err)
	}
	if length > MaxStringLength {
		return nil, fmt.Errorf("byte slice length prefix %d exceeds limit %d: %w", length, MaxStringLength, ErrMalformedStream)
	}
	buffer := make([]byte, length)
	if _, err := io.ReadFull(r.reader, buffer); err != nil {
		return nil, fmt.Errorf("reading %d byte slice bytes: %w: %w", length, ErrMalformedStream, err)
	}
	return buffer, nil
}

// ReadNullableString reads a string written by
// [Writer.WriteNullableString]. The second return value reports
// presence: an absent string decodes as ("", false), and a present
// empty string decodes as ("", true) — the two are distinct on the
// wire and stay distinct here.
func (r *Reader) ReadNullableString() (string, bool, error) {
	present, err := r.ReadBool()
	if err != nil {
		return "", false, fmt.Errorf("reading presence flag: %w", err)
	}
	if !present {
		return "", false, nil
	}
	value, err := r.ReadString()
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
