// SPDX-License-Identifier: MPL-2.0

// Package lint checks the structural well-formedness of reference sheets.
//
// The rules operate on the raw markdown text rather than the parsed model: a
// markdown parser silently repairs the defects being looked for (it closes
// unterminated fences and pads short table rows), so the raw line scan is the
// only place they are still visible. Findings are never fatal to the sheet's
// usefulness; they are warnings unless the caller opts into strict mode.
package lint
