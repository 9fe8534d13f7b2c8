// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"refbook/internal/discovery"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a starter sheet
	initCmd = &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter sheet in the current directory",
		Long: `Create a starter sheet in the current directory.

Without an argument the sheet is written to ` + discovery.LocalSheetName + `.
The starter sheet shows the expected structure: a title with frontmatter,
a table of contents, and topics with code blocks and tables.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing sheet")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := discovery.LocalSheetName
	if len(args) > 0 {
		filename = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(starterSheet), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the sheet and add your own topics")
	fmt.Println("  2. Run 'refbook topics' to see the catalog")
	fmt.Println("  3. Run 'refbook show <topic>' to print a topic")

	return nil
}

// starterSheet is the scaffold written by 'refbook init'.
const starterSheet = `+++
title = "My Reference"
description = "Personal command reference"
+++

# My Reference

<!-- toc -->
- [Shell](#shell)
  - [Find Files](#find-files)
- [Git](#git)
<!-- /toc -->

## Shell

### Find Files

` + "```bash" + `
# Find files by name below the current directory
find . -name '*.log'

# Find and delete empty directories
find . -type d -empty -delete
` + "```" + `

## Git

| Command | Effect |
| --- | --- |
| git status | Show working tree status |
| git log --oneline | Compact commit history |

` + "```bash" + `
git switch -c topic
git rebase -i origin/main
` + "```" + `
`
