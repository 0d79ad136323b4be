// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// manifestEntry mirrors the shape the snapshot store records per
// object: plain exported fields, cbor struct tags.
type manifestEntry struct {
	TypeName string `cbor:"type"`
	Size     int64  `cbor:"size"`
	Digest   string `cbor:"digest,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := manifestEntry{
		TypeName: "depmodel.ResolvedVariantResult",
		Size:     412,
		Digest:   "ab12",
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded manifestEntry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	// Snapshot hashes are computed over encoded bytes; two encodes of
	// the same value must be byte-identical.
	value := map[string]any{
		"zeta":  "last",
		"alpha": "first",
		"count": 3,
	}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two encodes of the same map differ")
	}
}

func TestDecodeIntoAnyUsesStringKeyedMaps(t *testing.T) {
	data, err := Marshal(map[string]any{"group": "org.example", "name": "core"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	asMap, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
	if asMap["group"] != "org.example" {
		t.Errorf("group = %v", asMap["group"])
	}
}

func TestStreamEncoderDecoder(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, entry := range []manifestEntry{
		{TypeName: "depmodel.Capability", Size: 24},
		{TypeName: "depmodel.AttributeContainer", Size: 96},
	} {
		if err := encoder.Encode(entry); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	var first, second manifestEntry
	if err := decoder.Decode(&first); err != nil {
		t.Fatalf("Decode first: %v", err)
	}
	if err := decoder.Decode(&second); err != nil {
		t.Fatalf("Decode second: %v", err)
	}
	if first.TypeName != "depmodel.Capability" || second.TypeName != "depmodel.AttributeContainer" {
		t.Errorf("decoded order wrong: %q then %q", first.TypeName, second.TypeName)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"name": "core"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, "core") {
		t.Errorf("diagnostic %q does not mention the encoded value", diagnostic)
	}
}
