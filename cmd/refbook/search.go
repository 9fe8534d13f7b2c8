// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// searchCmd finds topics by heading text
var searchCmd = &cobra.Command{
	Use:   "search <terms...>",
	Short: "Find topics whose headings match the given terms",
	Long: `Find topics whose headings match the given terms.

All terms must match (case-insensitive). An exact heading match is
returned alone, so 'refbook search git log | xargs refbook show' behaves
predictably.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	matches := cat.Search(query)
	if len(matches) == 0 {
		fmt.Println(SubtitleStyle.Render(fmt.Sprintf("No topics match %q", query)))
		return &ExitError{Code: 1, Err: fmt.Errorf("no topics match %q", query)}
	}

	for _, t := range matches {
		fmt.Printf("%s  %s\n", t.Title, AnchorStyle.Render("#"+t.Anchor))
	}

	return nil
}
