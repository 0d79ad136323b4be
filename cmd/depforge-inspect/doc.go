// Copyright 2026 The Depforge Authors
// SPDX-License-Identifier: Apache-2.0

// Depforge-inspect examines a snapshot store from the command line.
//
// Three commands:
//
//	list            print every manifest entry (hash, type, size, compression)
//	show HASH       decode one object and print it
//	verify          re-hash every object and report corruption
//
// The store directory is given with --store. Objects holding named
// attribute values decode back to their declared types only when the
// producing schema is supplied with --schema; without it they print
// with plain string values.
//
// Exit is zero on success and nonzero on any error, including a
// verify run that finds corrupt objects.
package main
