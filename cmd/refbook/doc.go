// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for refbook.
//
// This package implements the Cobra command hierarchy for the refbook CLI:
// the root command, catalog queries (topics, show, search), the interactive
// browser, the sheet linter, and utilities (toc, serve, init, config,
// completion).
package cmd
