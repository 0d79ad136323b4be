// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/depforge/depforge/lib/attrschema"
	"github.com/depforge/depforge/lib/codec"
	"github.com/depforge/depforge/lib/depmodel"
	"github.com/depforge/depforge/lib/serial"
	"github.com/depforge/depforge/lib/snapshotstore"
	"github.com/depforge/depforge/lib/stream"
	"github.com/depforge/depforge/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var storeDirectory string
	var schemaPath string
	var verbose bool

	flagSet := pflag.NewFlagSet("depforge-inspect", pflag.ContinueOnError)
	flagSet.StringVar(&storeDirectory, "store", "", "snapshot store directory (required)")
	flagSet.StringVar(&schemaPath, "schema", "", "attribute schema file (.json, .jsonc, .yaml or .yml)")
	flagSet.BoolVar(&verbose, "verbose", false, "log store access at debug level")

	// Handle --version before flag parsing to match other Depforge
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("depforge-inspect %s\n", version.Info())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if storeDirectory == "" {
		return fmt.Errorf("--store is required")
	}

	schema := depmodel.NewSchema()
	if schemaPath != "" {
		loaded, err := attrschema.Load(schemaPath)
		if err != nil {
			return err
		}
		schema = loaded
	}

	registry := serial.NewDependencyRegistry(
		serial.FallbackSerialize,
		depmodel.NewInterningModuleIdentifierFactory(),
		depmodel.DefaultAttributesFactory{},
		schema,
	)
	store, err := snapshotstore.NewStore(storeDirectory, registry, snapshotstore.CompressionZstd)
	if err != nil {
		return err
	}

	arguments := flagSet.Args()
	if len(arguments) == 0 {
		return fmt.Errorf("a command is required: list, show or verify")
	}
	switch arguments[0] {
	case "list":
		return runList(os.Stdout, store)
	case "show":
		if len(arguments) != 2 {
			return fmt.Errorf("usage: depforge-inspect --store DIR show HASH")
		}
		return runShow(os.Stdout, store, arguments[1])
	case "verify":
		return runVerify(logger, store)
	default:
		return fmt.Errorf("unknown command %q (want list, show or verify)", arguments[0])
	}
}

// runList prints one line per manifest entry, sorted by hash.
func runList(out io.Writer, store *snapshotstore.Store) error {
	manifest, err := store.Manifest()
	if err != nil {
		return err
	}
	for _, entry := range manifest {
		fmt.Fprintf(out, "%s  %-40s %8d  %s\n",
			entry.Hash, entry.TypeName, entry.Size, entry.Compression)
	}
	return nil
}

// runShow decodes the object addressed by hashText and prints a
// human-readable rendering. The manifest's recorded type name selects
// the decode path; objects stored through the self-describing fallback
// print in CBOR diagnostic notation.
func runShow(out io.Writer, store *snapshotstore.Store, hashText string) error {
	hash, err := snapshotstore.ParseHash(hashText)
	if err != nil {
		return err
	}
	manifest, err := store.Manifest()
	if err != nil {
		return err
	}
	var entry snapshotstore.ManifestEntry
	found := false
	for _, candidate := range manifest {
		if candidate.Hash == hash.String() {
			entry = candidate
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("hash %s is not in the manifest", hash)
	}

	fmt.Fprintf(out, "hash:        %s\n", entry.Hash)
	fmt.Fprintf(out, "type:        %s\n", entry.TypeName)
	fmt.Fprintf(out, "size:        %d bytes\n", entry.Size)
	fmt.Fprintf(out, "compression: %s\n", entry.Compression)

	switch entry.TypeName {
	case "depmodel.Capability":
		value, err := snapshotstore.Get[depmodel.Capability](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "capability:  %s\n", value.DisplayName())
	case "depmodel.ModuleVersionIdentifier":
		value, err := snapshotstore.Get[depmodel.ModuleVersionIdentifier](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "module:      %s\n", value.DisplayName())
	case "depmodel.ModuleComponentIdentifier":
		value, err := snapshotstore.Get[depmodel.ModuleComponentIdentifier](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "component:   %s\n", value.DisplayName())
	case "depmodel.ProjectComponentIdentifier":
		value, err := snapshotstore.Get[depmodel.ProjectComponentIdentifier](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "component:   %s\n", value.DisplayName())
	case "depmodel.OpaqueFileComponentIdentifier":
		value, err := snapshotstore.Get[depmodel.OpaqueFileComponentIdentifier](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "component:   %s\n", value.DisplayName())
	case "depmodel.LocalArtifactIdentifier":
		value, err := snapshotstore.Get[depmodel.LocalArtifactIdentifier](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "artifact:    %s\n", value.DisplayName())
		fmt.Fprintf(out, "file:        %s\n", value.Descriptor().File())
	case "depmodel.OpaqueArtifactIdentifier":
		value, err := snapshotstore.Get[depmodel.OpaqueArtifactIdentifier](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "artifact:    %s\n", value.DisplayName())
	case "depmodel.ModuleArtifactIdentifier":
		value, err := snapshotstore.Get[depmodel.ModuleArtifactIdentifier](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "artifact:    %s\n", value.DisplayName())
	case "depmodel.AttributeContainer":
		value, err := snapshotstore.Get[depmodel.AttributeContainer](store, hash)
		if err != nil {
			return err
		}
		printAttributes(out, value)
	case "depmodel.ResolvedVariantResult":
		value, err := snapshotstore.Get[depmodel.ResolvedVariantResult](store, hash)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "owner:       %s\n", value.Owner().DisplayName())
		fmt.Fprintf(out, "variant:     %s\n", value.DisplayName())
		printAttributes(out, value.Attributes())
		for _, capability := range value.Capabilities() {
			fmt.Fprintf(out, "capability:  %s\n", capability.DisplayName())
		}
	default:
		return showFallback(out, store, hash)
	}
	return nil
}

func printAttributes(out io.Writer, attributes depmodel.AttributeContainer) {
	for _, attribute := range attributes.Entries() {
		fmt.Fprintf(out, "attribute:   %s (%s) = %s\n",
			attribute.Name, attribute.Value.Kind(), attribute.Value)
	}
}

// showFallback renders an object whose type has no registered codec.
// Such objects were stored through the self-describing fallback, whose
// encoding is a single length-prefixed CBOR document.
func showFallback(out io.Writer, store *snapshotstore.Store, hash snapshotstore.Hash) error {
	encoded, err := store.Raw(hash)
	if err != nil {
		return err
	}
	payload, err := stream.NewReader(bytes.NewReader(encoded)).ReadBytes()
	if err != nil {
		return fmt.Errorf("object %s is not a self-describing encoding: %w", hash, err)
	}
	diagnostic, err := codec.Diagnose(payload)
	if err != nil {
		return fmt.Errorf("rendering object %s: %w", hash, err)
	}
	fmt.Fprintf(out, "value:       %s\n", diagnostic)
	return nil
}

// runVerify re-reads every manifest entry and re-hashes its stored
// bytes. Objects whose content no longer matches their address are
// reported individually; any mismatch or missing object fails the run.
func runVerify(logger *slog.Logger, store *snapshotstore.Store) error {
	manifest, err := store.Manifest()
	if err != nil {
		return err
	}

	corrupt := 0
	for _, entry := range manifest {
		hash, err := snapshotstore.ParseHash(entry.Hash)
		if err != nil {
			return fmt.Errorf("manifest entry %q: %w", entry.Hash, err)
		}
		encoded, err := store.Raw(hash)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", entry.Hash, err)
			corrupt++
			continue
		}
		if snapshotstore.HashSnapshot(encoded) != hash {
			fmt.Fprintf(os.Stderr, "%s: content digest mismatch\n", entry.Hash)
			corrupt++
			continue
		}
		logger.Debug("object verified", "hash", entry.Hash, "type", entry.TypeName)
	}

	if corrupt > 0 {
		return fmt.Errorf("%d of %d objects failed verification", corrupt, len(manifest))
	}
	fmt.Printf("verified %d objects\n", len(manifest))
	return nil
}
