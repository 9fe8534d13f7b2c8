// SPDX-License-Identifier: MPL-2.0

// Package discovery locates sheet files across the supported sources and
// loads them into parsed sheets.
//
// Discovery and loading are combined in one package because loading depends
// directly on discovery results and ordering. Splitting them would create
// unnecessary indirection without meaningful abstraction benefit.
//
// File organization:
//   - discovery.go: Core types (Discovery, Source, DiscoveredSheet) and loading
//   - discovery_files.go: File discovery (DiscoverAll, directory scanning)
//   - diagnostic.go: Structured non-fatal diagnostics
package discovery
