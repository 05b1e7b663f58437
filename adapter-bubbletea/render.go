package bubble_adapter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	editor "github.com/typograf/galley/core"
)

const cursorGlyph = "▏"

// renderGalley draws every line of the session as a row of glyph names.
// Logical order is buffer order; RTL lines are mirrored visually and pushed
// to the right edge, matching how the layout engine anchors them.
func (m *Model) renderGalley() string {
	lines := m.editor.Lines()
	if len(lines) == 0 {
		return m.theme.GlyphStyle.Render("type to place the first sort")
	}

	activeLine, _ := m.editor.ActiveLine()
	selStart, selEnd, hasSelection := m.editor.Selection()

	var rows []string
	for _, info := range lines {
		entries, err := m.editor.CurrentSequence(info.ID)
		if err != nil {
			continue
		}

		// Refresh the degraded flag for the status line.
		m.editor.LayoutPositions(info.ID)

		isActive := info.ID == activeLine
		cursorAt := -1
		if isActive {
			if offset, err := m.editor.CursorOffset(info.ID); err == nil {
				cursorAt = offset
			}
		}

		tokens := make([]string, 0, len(entries)+1)
		for i, entry := range entries {
			token := displayName(entry.Glyph)
			style := m.theme.GlyphStyle
			if i == 0 {
				style = m.theme.RootStyle
			}
			if isActive && hasSelection && i >= selStart && i < selEnd {
				style = m.theme.SelectionStyle
			}
			tokens = append(tokens, style.Render(token))
		}

		if cursorAt >= 0 {
			cursor := m.theme.CursorStyle.Render(cursorGlyph)
			tokens = append(tokens[:cursorAt], append([]string{cursor}, tokens[cursorAt:]...)...)
		}

		if info.Direction == editor.RTL {
			reverse(tokens)
		}

		row := strings.Join(tokens, " ")
		if m.editor.IsDegraded(info.ID) {
			row += " " + m.theme.DegradedStyle.Render("[glyph unavailable]")
		}
		if info.Direction == editor.RTL {
			row = lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, row)
		}

		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

// displayName renders multi-character glyph names in brackets so they read
// as one sort.
func displayName(id editor.GlyphID) string {
	name := id.String()
	if len(name) == 1 {
		return name
	}
	return "[" + name + "]"
}

func reverse(tokens []string) {
	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
}

func (m *Model) getStatusLine() string {
	lines := m.editor.Lines()
	activeLine, ok := m.editor.ActiveLine()
	if !ok {
		status := " galley · empty "
		return m.theme.StatusLineStyle.Render(status + strings.Repeat(" ", max(0, m.width-lipgloss.Width(status))))
	}

	lineNum := 0
	var info editor.LineInfo
	for i, candidate := range lines {
		if candidate.ID == activeLine {
			lineNum = i + 1
			info = candidate
			break
		}
	}

	offset, _ := m.editor.CursorOffset(activeLine)
	status := fmt.Sprintf(" line %d/%d · %s · sort %d/%d ", lineNum, len(lines), info.Direction, offset, info.Length)
	if m.editor.IsDegraded(activeLine) {
		status += "· degraded "
	}

	padding := max(0, m.width-lipgloss.Width(status))
	return m.theme.StatusLineStyle.Render(status + strings.Repeat(" ", padding))
}
