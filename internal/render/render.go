// SPDX-License-Identifier: MPL-2.0

// Package render turns sheet markdown into styled terminal output.
package render

import (
	"fmt"
	"strings"

	"refbook/internal/config"
	"refbook/pkg/sheet"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word-wrap width used when the configured width is 0.
const DefaultWidth = 100

type (
	// Options configures a Renderer.
	Options struct {
		// Theme selects the glamour style (auto, dark, light, notty).
		Theme config.Theme
		// Width is the word wrap width (0 uses DefaultWidth).
		Width int
	}

	// Renderer renders sheet content for the terminal. The zero value is not
	// usable; construct with New.
	Renderer struct {
		tr    *glamour.TermRenderer
		width int
	}
)

// New creates a Renderer for the given theme and width.
func New(opts Options) (*Renderer, error) {
	if err := opts.Theme.Validate(); err != nil {
		return nil, err
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	if opts.Theme == config.ThemeAuto {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(string(opts.Theme)))
	}

	tr, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return &Renderer{tr: tr, width: width}, nil
}

// Markdown renders a markdown string.
func (r *Renderer) Markdown(src string) (string, error) {
	out, err := r.tr.Render(src)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Topic renders a topic and everything nested under it.
func (r *Renderer) Topic(t *sheet.Topic) (string, error) {
	return r.Markdown(t.Markdown())
}

// Code renders a single snippet as a fenced code block so glamour applies
// syntax highlighting.
func (r *Renderer) Code(language, text string) (string, error) {
	var b strings.Builder
	b.WriteString("```")
	b.WriteString(language)
	b.WriteString("\n")
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return r.Markdown(b.String())
}

// Snippets renders only the code blocks of a topic, separated by blank
// lines. Used by 'show --code' to produce paste-ready output.
func (r *Renderer) Snippets(t *sheet.Topic) (string, error) {
	blocks := t.CodeBlocks()
	if len(blocks) == 0 {
		return "", nil
	}

	var parts []string
	for _, cb := range blocks {
		out, err := r.Code(cb.Language, cb.Text)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}

// RawSnippets returns the unstyled code block text of a topic, one block
// after another. Suitable for piping into a shell.
func RawSnippets(t *sheet.Topic) string {
	blocks := t.CodeBlocks()
	var b strings.Builder
	for i, cb := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(cb.Text)
		if !strings.HasSuffix(cb.Text, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
