// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides depforge's standard CBOR encoding
// configuration.
//
// The dependency-metadata wire format itself (lib/stream + lib/serial)
// is a fixed-order binary format, not CBOR. CBOR fills the two places
// where a self-describing encoding is needed:
//
//   - the serial registry's serialization fallback, which must encode
//     arbitrary plain values (strings, numbers, maps) that have no
//     registered codec;
//   - snapshot store manifests, which are read back by tooling that
//     does not know the stored types.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes, which keeps
// snapshot hashes stable across processes.
package codec
