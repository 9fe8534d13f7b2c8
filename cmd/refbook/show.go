// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"refbook/internal/issue"
	"refbook/internal/render"
	"refbook/pkg/catalog"

	"github.com/spf13/cobra"
)

var (
	showRaw  bool
	showCode bool

	// showCmd prints a single topic
	showCmd = &cobra.Command{
		Use:   "show <topic>",
		Short: "Print a topic rendered for the terminal",
		Long: `Print a topic rendered for the terminal.

The topic is addressed by its anchor (as printed by 'refbook topics'),
its exact heading text, or any string that slugs to an existing anchor.
Everything nested under the topic is included.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runShow,
	}
)

func init() {
	showCmd.Flags().BoolVarP(&showRaw, "raw", "r", false, "print raw markdown without styling")
	showCmd.Flags().BoolVarP(&showCode, "code", "c", false, "print only the topic's code snippets")
}

func runShow(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	id := strings.Join(args, " ")
	topic, err := cat.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrTopicNotFound) {
			printIssueCard(issue.TopicNotFoundId)
		}
		return err
	}

	// Raw output bypasses the renderer entirely.
	if showRaw {
		if showCode {
			fmt.Print(render.RawSnippets(topic))
			return nil
		}
		fmt.Print(topic.Markdown())
		return nil
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	var out string
	if showCode {
		out, err = renderer.Snippets(topic)
	} else {
		out, err = renderer.Topic(topic)
	}
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}
