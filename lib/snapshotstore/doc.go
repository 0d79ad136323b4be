// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshotstore persists encoded dependency-metadata values
// in a content-addressed on-disk store.
//
// A value is encoded with its registry-resolved codec, hashed with a
// domain-separated BLAKE3 keyed hash over the encoded bytes, then
// stored compressed under objects/<first two hex digits>/<rest>. The
// hash is the value's identity: storing the same logical value twice
// writes one object. A CBOR manifest records the stored type name and
// sizes per object so inspection tooling can list a store without
// knowing the types inside it.
//
// Store files are written via a temp file and rename, so a crashed
// writer never leaves a partial object visible under its final name.
package snapshotstore
