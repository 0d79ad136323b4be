// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package attrschema loads attribute schemas from configuration
// files. A schema is the naming registry the decode side uses to
// restore typed attribute values.
//
// Two file formats are supported, chosen by extension: JSON with
// JSONC extensions (// line comments, /* block comments */, trailing
// commas) for .json/.jsonc files, and YAML for .yaml/.yml files. Both
// describe the same shape:
//
//	{
//	    "attributes": {
//	        "org.example.usage":    {"kind": "named", "type": "Usage"},
//	        "org.example.minified": {"kind": "bool"},
//	        "org.example.status":   {"kind": "string"},
//	    }
//	}
package attrschema
