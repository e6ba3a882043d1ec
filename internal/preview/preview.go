// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders search output and dataset records as terminal
// panels.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/snail/pkg/types"
)

const defaultWidth = 100

var (
	green = lipgloss.Color("#8BC34A")
	red   = lipgloss.Color("#e53935")
	muted = lipgloss.Color("#9aa4b2")

	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(green)
	mutedStyle = lipgloss.NewStyle().Foreground(muted)
)

// Renderer writes panels to an io.Writer.
type Renderer struct {
	w        io.Writer
	width    int
	markdown bool
}

// New returns a Renderer. A width of zero uses 100 columns. When markdown is
// false, Markdown text is printed verbatim instead of being styled.
func New(w io.Writer, width int, markdown bool) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Renderer{w: w, width: width, markdown: markdown}
}

func (r *Renderer) panel(title, body string, border lipgloss.TerminalColor) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(r.width - 2)
	if title != "" {
		body = titleStyle.Render(title) + "\n\n" + body
	}
	return style.Render(body)
}

// Search renders the grounded search answer and its citations.
func (r *Renderer) Search(res types.SearchResult) error {
	body := res.Text
	if r.markdown {
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(r.width-6),
		)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		if out, err := md.Render(res.Text); err == nil {
			body = strings.TrimSpace(out)
		}
	}

	if len(res.Citations) > 0 {
		var sb strings.Builder
		sb.WriteString(body)
		sb.WriteString("\n\n")
		sb.WriteString(labelStyle.Render("Sources"))
		for i, c := range res.Citations {
			title := c.Title
			if title == "" {
				title = c.URI
			}
			fmt.Fprintf(&sb, "\n%d. %s %s", i+1, title, mutedStyle.Render(c.URI))
		}
		body = sb.String()
	}

	_, err := fmt.Fprintln(r.w, r.panel("Result of searching", body, red))
	return err
}

// Instructions renders the extracted enumerated items.
func (r *Renderer) Instructions(items []string) error {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s %s", labelStyle.Render(fmt.Sprintf("%d.", i+1)), item)
	}
	_, err := fmt.Fprintln(r.w, r.panel(fmt.Sprintf("Instructions (%d)", len(items)), sb.String(), green))
	return err
}

// Records renders one panel per dataset record.
func (r *Renderer) Records(records []types.Record) error {
	for i, rec := range records {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %s\n\n", labelStyle.Render("Instruction:"), rec.Instruction)
		fmt.Fprintf(&sb, "%s %s\n\n", titleStyle.Render("Input:"), rec.Input)
		fmt.Fprintf(&sb, "%s %s", lipgloss.NewStyle().Bold(true).Foreground(red).Render("Output:"), rec.Output)
		title := fmt.Sprintf("Dataset preview %d/%d", i+1, len(records))
		if _, err := fmt.Fprintln(r.w, r.panel(title, sb.String(), green)); err != nil {
			return err
		}
	}
	return nil
}
