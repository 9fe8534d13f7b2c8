// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	topicsAnchors bool

	// topicsCmd lists every topic in the catalog
	topicsCmd = &cobra.Command{
		Use:   "topics",
		Short: "List all topics in the catalog",
		Long: `List all topics in the catalog.

Topics are the headings of the loaded sheets, indented by nesting level.
Each topic's anchor is the identifier accepted by 'refbook show'.`,
		RunE: runTopics,
	}
)

func init() {
	topicsCmd.Flags().BoolVarP(&topicsAnchors, "anchors", "a", false, "print bare anchors only, one per line")
}

func runTopics(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	topics := cat.Topics()

	if topicsAnchors {
		for _, t := range topics {
			fmt.Println(t.Anchor)
		}
		return nil
	}

	fmt.Println(TitleStyle.Render("Topics") + SubtitleStyle.Render(fmt.Sprintf(" (%d)", len(topics))))
	fmt.Println()

	for _, t := range topics {
		indent := strings.Repeat("  ", t.Level-1)
		fmt.Printf("%s%s  %s\n", indent, t.Title, AnchorStyle.Render("#"+t.Anchor))
	}

	return nil
}
