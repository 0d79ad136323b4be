// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package snapshotstore

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest of a value's encoded bytes.
type Hash [32]byte

// snapshotDomainKey is the BLAKE3 key for snapshot hashing. Domain
// separation keeps snapshot hashes from colliding with any other
// BLAKE3 use of the same input bytes. The key is the ASCII domain
// name zero-padded to 32 bytes, readable in hex dumps; BLAKE3 keyed
// mode treats it as an opaque value.
var snapshotDomainKey = [32]byte{
	'd', 'e', 'p', 'f', 'o', 'r', 'g', 'e', '.', 's', 'n', 'a', 'p', 's', 'h', 'o',
	't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashSnapshot computes the snapshot-domain hash of encoded bytes.
// Hashes are always computed on the uncompressed encoding, so the
// identity of a value does not depend on the compression choice.
func HashSnapshot(encoded []byte) Hash {
	hasher, err := blake3.NewKeyed(snapshotDomainKey[:])
	if err != nil {
		// NewKeyed fails only on a wrong key length; the key above is
		// a 32-byte constant.
		panic("snapshotstore: keyed hasher initialization failed: " + err.Error())
	}
	hasher.Write(encoded)
	var digest Hash
	hasher.Sum(digest[:0])
	return digest
}

// String returns the lower-case hex form of the hash. This is the
// canonical format used in manifests, object paths and CLI output.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses the 64-character hex form of a hash.
func ParseHash(text string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return hash, fmt.Errorf("parsing snapshot hash: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("snapshot hash is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}
