// SPDX-License-Identifier: MPL-2.0

// Package sheettest provides test helpers for building sheet markdown
// fixtures.
//
// This package is separate from testutil so packages under pkg/ can use it
// without pulling test helpers that depend on internal packages.
//
// # Usage
//
//	src := sheettest.NewSheet("Git",
//	    sheettest.WithTopic(2, "Basics",
//	        sheettest.Code("bash", "git status"),
//	    ),
//	)
package sheettest
