// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package depmodel

import (
	"sync"
	"testing"
)

func TestCapabilityVersionPresence(t *testing.T) {
	versioned := NewCapability("org.example", "logging", "1.0")
	if version, ok := versioned.Version(); !ok || version != "1.0" {
		t.Errorf("Version() = (%q, %v), want (\"1.0\", true)", version, ok)
	}

	unversioned := NewCapabilityWithoutVersion("org.example", "logging")
	if version, ok := unversioned.Version(); ok {
		t.Errorf("Version() = (%q, %v), want absent", version, ok)
	}

	// An absent version and a present empty version are distinct
	// values.
	if unversioned == NewCapability("org.example", "logging", "") {
		t.Error("capability without version compares equal to capability with empty version")
	}

	if got, want := versioned.DisplayName(), "org.example:logging:1.0"; got != want {
		t.Errorf("DisplayName() = %q, want %q", got, want)
	}
	if got, want := unversioned.DisplayName(), "org.example:logging"; got != want {
		t.Errorf("DisplayName() = %q, want %q", got, want)
	}
}

func TestInterningFactoryConcurrentUse(t *testing.T) {
	// The factory is hit from whatever goroutine holds a decode
	// stream; hammer it from several at once. Run with -race to get
	// the actual guarantee.
	factory := NewInterningModuleIdentifierFactory()

	var group sync.WaitGroup
	for i := 0; i < 8; i++ {
		group.Add(1)
		go func() {
			defer group.Done()
			for j := 0; j < 100; j++ {
				id := factory.ModuleWithVersion("org.example", "core", "2.1")
				if id.DisplayName() != "org.example:core:2.1" {
					t.Errorf("DisplayName() = %q", id.DisplayName())
					return
				}
			}
		}()
	}
	group.Wait()
}

func TestAttributesFactoryRejectsDuplicates(t *testing.T) {
	factory := DefaultAttributesFactory{}
	_, err := factory.Container([]Attribute{
		{Name: "org.example.usage", Value: StringValue("api")},
		{Name: "org.example.usage", Value: StringValue("runtime")},
	})
	if err == nil {
		t.Fatal("Container accepted duplicate attribute names")
	}
}

func TestAttributeContainerOrderMatters(t *testing.T) {
	factory := DefaultAttributesFactory{}

	forward, err := factory.Container([]Attribute{
		{Name: "a", Value: StringValue("1")},
		{Name: "b", Value: StringValue("2")},
	})
	if err != nil {
		t.Fatalf("Container: %v", err)
	}
	backward, err := factory.Container([]Attribute{
		{Name: "b", Value: StringValue("2")},
		{Name: "a", Value: StringValue("1")},
	})
	if err != nil {
		t.Fatalf("Container: %v", err)
	}

	if forward.Equal(backward) {
		t.Error("containers with different entry order compare equal")
	}
	if !forward.Equal(forward) {
		t.Error("container does not compare equal to itself")
	}

	value, ok := forward.Value("b")
	if !ok {
		t.Fatal("Value(\"b\") not found")
	}
	if text, _ := value.AsString(); text != "2" {
		t.Errorf("Value(\"b\") = %q, want \"2\"", text)
	}
}

func TestNamedValueAccessors(t *testing.T) {
	value := NamedValue("Usage", "java-runtime")
	typeName, name, ok := value.AsNamed()
	if !ok || typeName != "Usage" || name != "java-runtime" {
		t.Errorf("AsNamed() = (%q, %q, %v)", typeName, name, ok)
	}
	if _, ok := value.AsString(); ok {
		t.Error("AsString() reported ok for a named value")
	}
	if got, want := value.String(), "Usage(java-runtime)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestResolvedVariantResultEqual(t *testing.T) {
	owner := NewModuleComponentIdentifier(NewModuleVersionIdentifier("org.example", "core", "1.0"))
	attributes, err := DefaultAttributesFactory{}.Container([]Attribute{
		{Name: "org.example.usage", Value: NamedValue("Usage", "api")},
	})
	if err != nil {
		t.Fatalf("Container: %v", err)
	}
	capabilities := []Capability{
		NewCapabilityWithoutVersion("g1", "n1"),
		NewCapability("g2", "n2", "2.0"),
	}

	first := NewResolvedVariantResult(owner, "apiElements", attributes, capabilities)
	second := NewResolvedVariantResult(owner, "apiElements", attributes, capabilities)
	if !first.Equal(second) {
		t.Error("identically constructed results are not Equal")
	}

	reordered := NewResolvedVariantResult(owner, "apiElements", attributes, []Capability{capabilities[1], capabilities[0]})
	if first.Equal(reordered) {
		t.Error("results with reordered capabilities compare Equal")
	}

	// The constructor copies its input; mutating the caller's slice
	// afterwards must not change the result.
	capabilities[0] = NewCapability("mutated", "mutated", "9")
	if !first.Equal(second) {
		t.Error("result visible mutation through the constructor's input slice")
	}
}
