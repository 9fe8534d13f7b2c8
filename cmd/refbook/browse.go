// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"refbook/internal/render"
	"refbook/pkg/catalog"
	"refbook/pkg/sheet"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// browseCmd opens the interactive topic browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse topics interactively",
	Long: `Browse topics interactively.

Keys: up/down move, / filters, enter opens a topic, esc goes back,
q quits.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	model := newBrowseModel(cat, renderer)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// topicItem adapts a topic for the bubbles list component.
type topicItem struct {
	topic *sheet.Topic
}

func (i topicItem) Title() string       { return i.topic.Title }
func (i topicItem) Description() string { return "#" + i.topic.Anchor }
func (i topicItem) FilterValue() string { return i.topic.Title + " " + i.topic.Anchor }

// browseModel is the bubbletea model for the topic browser. It has two
// views: the topic list and a viewport showing a rendered topic.
type browseModel struct {
	list     list.Model
	viewport viewport.Model
	renderer *render.Renderer

	showingTopic bool
	width        int
	height       int
	err          error
}

var (
	browseTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	browseFooterStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

func newBrowseModel(cat *catalog.Catalog, renderer *render.Renderer) *browseModel {
	topics := cat.Topics()
	items := make([]list.Item, 0, len(topics))
	for _, t := range topics {
		items = append(items, topicItem{topic: t})
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Topics"
	l.SetShowStatusBar(false)

	return &browseModel{
		list:     l,
		viewport: viewport.New(80, 20),
		renderer: renderer,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4 // Leave room for title and footer

	case tea.KeyMsg:
		if m.showingTopic {
			switch msg.String() {
			case "q", "esc":
				m.showingTopic = false
				m.err = nil
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Quit only when the list filter isn't capturing input.
			if m.list.FilterState() != list.Filtering {
				return m, tea.Quit
			}
		case "enter":
			if m.list.FilterState() != list.Filtering {
				if item, ok := m.list.SelectedItem().(topicItem); ok {
					m.openTopic(item.topic)
					return m, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// openTopic renders the selected topic into the viewport.
func (m *browseModel) openTopic(t *sheet.Topic) {
	out, err := m.renderer.Topic(t)
	if err != nil {
		m.err = err
		out = ErrorStyle.Render("Failed to render topic: ") + err.Error()
	}
	m.viewport.SetContent(out)
	m.viewport.GotoTop()
	m.showingTopic = true
}

func (m *browseModel) View() string {
	if !m.showingTopic {
		return m.list.View()
	}

	title := ""
	if item, ok := m.list.SelectedItem().(topicItem); ok {
		title = browseTitleStyle.Render(item.topic.Title) + "\n"
	}
	footer := browseFooterStyle.Render("↑/↓: scroll • esc: back • ctrl+c: quit")

	return title + m.viewport.View() + "\n" + footer
}
