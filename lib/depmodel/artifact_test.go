// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalPathResolvesRelativeSegments(t *testing.T) {
	directory := t.TempDir()
	target := filepath.Join(directory, "a", "file.jar")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(target, []byte("jar"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// "<dir>/a/../a/file.jar" must canonicalize to "<dir>/a/file.jar".
	crooked := filepath.Join(directory, "a", "..", "a", "file.jar")
	canonical, err := CanonicalPath(crooked)
	if err != nil {
		t.Fatalf("CanonicalPath: %v", err)
	}
	if !filepath.IsAbs(canonical) {
		t.Errorf("canonical path %q is not absolute", canonical)
	}

	// The existing target path itself canonicalizes to the same form.
	direct, err := CanonicalPath(target)
	if err != nil {
		t.Fatalf("CanonicalPath: %v", err)
	}
	if canonical != direct {
		t.Errorf("canonical forms differ: %q vs %q", canonical, direct)
	}
}

func TestCanonicalPathResolvesSymlinks(t *testing.T) {
	directory := t.TempDir()
	target := filepath.Join(directory, "real.jar")
	if err := os.WriteFile(target, []byte("jar"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	link := filepath.Join(directory, "link.jar")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	canonical, err := CanonicalPath(link)
	if err != nil {
		t.Fatalf("CanonicalPath: %v", err)
	}
	want, err := CanonicalPath(target)
	if err != nil {
		t.Fatalf("CanonicalPath: %v", err)
	}
	if canonical != want {
		t.Errorf("CanonicalPath(link) = %q, want %q", canonical, want)
	}
}

func TestCanonicalPathAcceptsMissingFiles(t *testing.T) {
	// Artifacts are often described before they are built; a path
	// that does not exist yet still canonicalizes lexically.
	missing := filepath.Join(t.TempDir(), "not", "built", "yet.jar")
	canonical, err := CanonicalPath(missing)
	if err != nil {
		t.Fatalf("CanonicalPath: %v", err)
	}
	if canonical != missing {
		t.Errorf("CanonicalPath = %q, want %q", canonical, missing)
	}
}

func TestCanonicalPathReportsFilesystemErrors(t *testing.T) {
	// A regular file used as a directory component is a filesystem
	// error (ENOTDIR), not a missing path, and must surface as
	// ErrPathResolution.
	directory := t.TempDir()
	file := filepath.Join(directory, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := CanonicalPath(filepath.Join(file, "child", "x.jar"))
	if err == nil {
		t.Skip("platform treats file-as-directory as not-exist")
	}
	if !errors.Is(err, ErrPathResolution) {
		t.Errorf("error %v does not wrap ErrPathResolution", err)
	}
}

func TestArtifactDescriptorClassifierPresence(t *testing.T) {
	plain := NewArtifactDescriptor("core", "jar", "jar", "/tmp/core.jar")
	if classifier, ok := plain.Classifier(); ok {
		t.Errorf("Classifier() = (%q, %v), want absent", classifier, ok)
	}

	sources := plain.WithClassifier("sources")
	if classifier, ok := sources.Classifier(); !ok || classifier != "sources" {
		t.Errorf("Classifier() = (%q, %v), want (\"sources\", true)", classifier, ok)
	}
	// WithClassifier returns a copy; the original is untouched.
	if _, ok := plain.Classifier(); ok {
		t.Error("WithClassifier mutated the original descriptor")
	}
}

func TestOpaqueArtifactDerivedComponent(t *testing.T) {
	artifact := NewOpaqueArtifactIdentifier("/opt/libs/vendor.jar")
	component := artifact.ComponentIdentifier()
	fileComponent, ok := component.(FileComponent)
	if !ok {
		t.Fatalf("component %T is not a FileComponent", component)
	}
	if fileComponent.File() != "/opt/libs/vendor.jar" {
		t.Errorf("File() = %q", fileComponent.File())
	}
}
