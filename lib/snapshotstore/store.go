// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package snapshotstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"

	"github.com/depforge/depforge/lib/codec"
	"github.com/depforge/depforge/lib/serial"
	"github.com/depforge/depforge/lib/stream"
)

// Object format constants.
const (
	// objectVersion is the store format version byte embedded in the
	// magic.
	objectVersion = 1

	// objectHeaderSize is the fixed header: 8-byte magic + 1-byte
	// compression tag + 3 reserved bytes + 4-byte uncompressed size.
	objectHeaderSize = 16

	manifestName = "manifest.cbor"
)

// objectMagic is the 8-byte object file signature.
var objectMagic = [8]byte{'D', 'E', 'P', 'F', 'R', 'G', objectVersion, 0}

// ErrNotFound reports a Get for a hash the store does not hold.
var ErrNotFound = errors.New("snapshot not found")

// ManifestEntry describes one stored object.
type ManifestEntry struct {
	// Hash is the hex snapshot hash (also the object's address).
	Hash string `cbor:"hash"`

	// TypeName is the Go type name of the stored value, as reported
	// by reflect. Inspection tooling keys its decode paths off this.
	TypeName string `cbor:"type"`

	// Size is the uncompressed encoded size in bytes.
	Size int64 `cbor:"size"`

	// Compression names the algorithm the object is stored with.
	Compression string `cbor:"compression"`
}

// Store is a content-addressed snapshot store rooted at one
// directory. Concurrent Puts and Gets from one process are safe; the
// manifest is guarded by a mutex and object writes are atomic
// (temp file + rename). Multiple processes writing the same store are
// not coordinated.
type Store struct {
	directory   string
	registry    *serial.Registry
	compression CompressionTag

	mutex sync.Mutex // guards the manifest file
}

// NewStore opens (creating if needed) a store rooted at directory.
// Values are encoded with codecs resolved from registry and stored
// with the given compression (falling back to none per object when
// compression does not pay).
func NewStore(directory string, registry *serial.Registry, compression CompressionTag) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(directory, "objects"), 0o755); err != nil {
		return nil, fmt.Errorf("creating store layout: %w", err)
	}
	return &Store{directory: directory, registry: registry, compression: compression}, nil
}

// Directory returns the store's root directory.
func (s *Store) Directory() string {
	return s.directory
}

// Put encodes value with its registry-resolved codec and stores the
// encoding, returning its snapshot hash. Storing a value that is
// already present is a cheap no-op beyond encoding and hashing.
func Put[T any](store *Store, value T) (Hash, error) {
	resolved, err := serial.For[T](store.registry)
	if err != nil {
		return Hash{}, fmt.Errorf("resolving codec: %w", err)
	}

	var buffer bytes.Buffer
	if err := resolved.Encode(stream.NewWriter(&buffer), value); err != nil {
		return Hash{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	encoded := buffer.Bytes()
	hash := HashSnapshot(encoded)

	if err := store.writeObject(hash, encoded); err != nil {
		return Hash{}, err
	}
	entry := ManifestEntry{
		Hash:     hash.String(),
		TypeName: reflect.TypeOf((*T)(nil)).Elem().String(),
		Size:     int64(len(encoded)),
	}
	if err := store.recordEntry(entry); err != nil {
		return Hash{}, err
	}
	return hash, nil
}

// Get loads the object addressed by hash and decodes it as T. The
// stored bytes are re-hashed before decoding; a digest mismatch is
// corruption and fails before any value is constructed.
func Get[T any](store *Store, hash Hash) (T, error) {
	var zero T
	encoded, err := store.readObject(hash)
	if err != nil {
		return zero, err
	}
	if HashSnapshot(encoded) != hash {
		return zero, fmt.Errorf("object %s: content digest mismatch", hash)
	}

	resolved, err := serial.For[T](store.registry)
	if err != nil {
		return zero, fmt.Errorf("resolving codec: %w", err)
	}
	value, err := resolved.Decode(stream.NewReader(bytes.NewReader(encoded)))
	if err != nil {
		return zero, fmt.Errorf("decoding snapshot %s: %w", hash, err)
	}
	return value, nil
}

// Raw returns the stored encoding of an object without decoding it.
// Inspection tooling uses this for objects whose type it does not
// know.
func (s *Store) Raw(hash Hash) ([]byte, error) {
	return s.readObject(hash)
}

// Contains reports whether the store holds an object for hash.
func (s *Store) Contains(hash Hash) bool {
	_, err := os.Stat(s.objectPath(hash))
	return err == nil
}

// Manifest returns the manifest entries sorted by hash.
func (s *Store) Manifest() ([]ManifestEntry, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	entries, err := s.loadManifest()
	if err != nil {
		return nil, err
	}
	out := make([]ManifestEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hash < out[j].Hash })
	return out, nil
}

func (s *Store) objectPath(hash Hash) string {
	hex := hash.String()
	return filepath.Join(s.directory, "objects", hex[:2], hex[2:])
}

// writeObject stores encoded under its hash, compressing with the
// store's algorithm and falling back to no compression when the data
// is incompressible.
func (s *Store) writeObject(hash Hash, encoded []byte) error {
	path := s.objectPath(hash)
	if _, err := os.Stat(path); err == nil {
		return nil // content-addressed: already stored
	}

	tag := s.compression
	payload, err := compress(encoded, tag)
	if errors.Is(err, errIncompressible) {
		tag = CompressionNone
		payload = encoded
	} else if err != nil {
		return fmt.Errorf("compressing object %s: %w", hash, err)
	}

	header := make([]byte, objectHeaderSize)
	copy(header, objectMagic[:])
	header[8] = byte(tag)
	binary.LittleEndian.PutUint32(header[12:], uint32(len(encoded)))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating object directory: %w", err)
	}
	temporary, err := os.CreateTemp(filepath.Dir(path), ".tmp-object-*")
	if err != nil {
		return fmt.Errorf("creating temp object: %w", err)
	}
	defer os.Remove(temporary.Name())

	if _, err := temporary.Write(header); err != nil {
		temporary.Close()
		return fmt.Errorf("writing object header: %w", err)
	}
	if _, err := temporary.Write(payload); err != nil {
		temporary.Close()
		return fmt.Errorf("writing object payload: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing temp object: %w", err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("publishing object: %w", err)
	}
	return nil
}

func (s *Store) readObject(hash Hash) ([]byte, error) {
	data, err := os.ReadFile(s.objectPath(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("object %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", hash, err)
	}
	if len(data) < objectHeaderSize {
		return nil, fmt.Errorf("object %s: %d bytes is shorter than the header", hash, len(data))
	}
	if !bytes.Equal(data[:8], objectMagic[:]) {
		return nil, fmt.Errorf("object %s: bad magic", hash)
	}
	tag := CompressionTag(data[8])
	uncompressedSize := int(binary.LittleEndian.Uint32(data[12:16]))

	decompressed, err := decompress(data[objectHeaderSize:], tag, uncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", hash, err)
	}
	return decompressed, nil
}

// recordEntry merges one entry into the manifest. The entry's
// Compression field is filled from the object on disk so the manifest
// reflects the per-object fallback decision.
func (s *Store) recordEntry(entry ManifestEntry) error {
	hash, err := ParseHash(entry.Hash)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(s.objectPath(hash))
	if err != nil {
		return fmt.Errorf("rereading object for manifest: %w", err)
	}
	if len(data) > 8 {
		entry.Compression = CompressionTag(data[8]).String()
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	entries, err := s.loadManifest()
	if err != nil {
		return err
	}
	entries[entry.Hash] = entry

	encoded, err := codec.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	temporary, err := os.CreateTemp(s.directory, ".tmp-manifest-*")
	if err != nil {
		return fmt.Errorf("creating temp manifest: %w", err)
	}
	defer os.Remove(temporary.Name())
	if _, err := temporary.Write(encoded); err != nil {
		temporary.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing temp manifest: %w", err)
	}
	if err := os.Rename(temporary.Name(), filepath.Join(s.directory, manifestName)); err != nil {
		return fmt.Errorf("publishing manifest: %w", err)
	}
	return nil
}

// loadManifest must be called with the mutex held.
func (s *Store) loadManifest() (map[string]ManifestEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.directory, manifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]ManifestEntry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var entries map[string]ManifestEntry
	if err := codec.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if entries == nil {
		entries = make(map[string]ManifestEntry)
	}
	return entries, nil
}
