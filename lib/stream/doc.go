// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package stream provides the low-level binary primitives used by the
// dependency-metadata wire format: fixed-width little-endian integers,
// length-prefixed strings, and nullable strings with a one-byte
// presence flag.
//
// The format is deliberately minimal. Records built on top of these
// primitives are un-tagged concatenations of fields in a fixed order;
// the caller must already know which codec produced a stream (the
// serial package's registry supplies that knowledge). Nothing here is
// self-describing beyond string length prefixes and presence flags.
//
// All read-side failures — truncated input, an oversized length
// prefix, an invalid presence flag — wrap [ErrMalformedStream] so
// callers can classify corruption with errors.Is without inspecting
// message text.
package stream
