// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package snapshotstore

import (
	"errors"
	"os"
	"testing"

	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/serial"
)

func testStore(t *testing.T, compression CompressionTag) *Store {
	t.Helper()
	schema := depmodel.NewSchema()
	if err := schema.DeclareNamed("org.example.usage", "Usage"); err != nil {
		t.Fatalf("DeclareNamed: %v", err)
	}
	registry := serial.NewDependencyRegistry(
		serial.FallbackStrict,
		depmodel.NewInterningModuleIdentifierFactory(),
		depmodel.DefaultAttributesFactory{},
		schema,
	)
	store, err := NewStore(t.TempDir(), registry, compression)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func sampleVariant(t *testing.T, version string) depmodel.ResolvedVariantResult {
	t.Helper()
	owner := depmodel.NewModuleComponentIdentifier(depmodel.NewModuleVersionIdentifier("org.example", "core", version))
	attributes, err := depmodel.DefaultAttributesFactory{}.Container([]depmodel.Attribute{
		{Name: "org.example.usage", Value: depmodel.NamedValue("Usage", "java-runtime")},
	})
	if err != nil {
		t.Fatalf("Container: %v", err)
	}
	return depmodel.NewResolvedVariantResult(owner, "runtimeElements", attributes, []depmodel.Capability{
		depmodel.NewCapability("org.example", "core-api", version),
	})
}

func TestPutGetRoundtrip(t *testing.T) {
	store := testStore(t, CompressionZstd)

	variant := sampleVariant(t, "1.0")
	hash, err := Put(store, variant)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !store.Contains(hash) {
		t.Error("Contains = false after Put")
	}

	loaded, err := Get[depmodel.ResolvedVariantResult](store, hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !loaded.Equal(variant) {
		t.Error("loaded variant differs from stored variant")
	}
}

func TestPutIsContentAddressed(t *testing.T) {
	store := testStore(t, CompressionZstd)

	first, err := Put(store, sampleVariant(t, "1.0"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	second, err := Put(store, sampleVariant(t, "1.0"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if first != second {
		t.Errorf("same value hashed differently: %s vs %s", first, second)
	}

	other, err := Put(store, sampleVariant(t, "2.0"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if other == first {
		t.Error("different values share a hash")
	}

	manifest, err := store.Manifest()
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if len(manifest) != 2 {
		t.Errorf("manifest has %d entries, want 2", len(manifest))
	}
}

func TestManifestRecordsTypeAndCompression(t *testing.T) {
	store := testStore(t, CompressionLZ4)

	capability := depmodel.NewCapability("org.example", "logging", "1.0")
	if _, err := Put(store, capability); err != nil {
		t.Fatalf("Put: %v", err)
	}

	manifest, err := store.Manifest()
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if len(manifest) != 1 {
		t.Fatalf("manifest has %d entries, want 1", len(manifest))
	}
	entry := manifest[0]
	if entry.TypeName != "depmodel.Capability" {
		t.Errorf("TypeName = %q, want depmodel.Capability", entry.TypeName)
	}
	if entry.Size <= 0 {
		t.Errorf("Size = %d, want > 0", entry.Size)
	}
	// A tiny capability encoding is incompressible; the store must
	// have fallen back to storing it raw and said so.
	if _, err := ParseCompressionTag(entry.Compression); err != nil {
		t.Errorf("manifest compression %q does not parse: %v", entry.Compression, err)
	}
	if entry.Compression != "none" {
		t.Errorf("Compression = %q, want fallback to none for a tiny object", entry.Compression)
	}
}

func TestGetMissingHash(t *testing.T) {
	store := testStore(t, CompressionNone)
	_, err := Get[depmodel.Capability](store, HashSnapshot([]byte("never stored")))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestGetDetectsCorruption(t *testing.T) {
	store := testStore(t, CompressionNone)

	capability := depmodel.NewCapability("org.example", "logging", "1.0")
	hash, err := Put(store, capability)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Flip one payload byte on disk; the digest check must catch it
	// before a value is constructed.
	path := store.objectPath(hash)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	data[len(data)-1] ^= 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Get[depmodel.Capability](store, hash); err == nil {
		t.Error("Get succeeded on a corrupted object")
	}
}

func TestHashParseRoundtrip(t *testing.T) {
	hash := HashSnapshot([]byte("some encoded value"))
	parsed, err := ParseHash(hash.String())
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	if parsed != hash {
		t.Errorf("ParseHash(%s) = %s", hash, parsed)
	}

	if _, err := ParseHash("zz"); err == nil {
		t.Error("ParseHash accepted invalid hex")
	}
	if _, err := ParseHash("abcd"); err == nil {
		t.Error("ParseHash accepted a short digest")
	}
}

func TestCompressionRoundtrip(t *testing.T) {
	// Repetitive metadata must survive both algorithms and come back
	// byte-identical.
	var sample []byte
	for i := 0; i < 200; i++ {
		sample = append(sample, []byte("org.example:core:1.0.")...)
		sample = append(sample, byte('0'+i%10))
	}

	for _, tag := range []CompressionTag{CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			compressed, err := compress(sample, tag)
			if err != nil {
				t.Fatalf("compress: %v", err)
			}
			if len(compressed) >= len(sample) {
				t.Fatalf("compressed %d bytes not smaller than input %d", len(compressed), len(sample))
			}
			restored, err := decompress(compressed, tag, len(sample))
			if err != nil {
				t.Fatalf("decompress: %v", err)
			}
			if string(restored) != string(sample) {
				t.Error("decompressed bytes differ from input")
			}
		})
	}
}
