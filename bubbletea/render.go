package bubbletea

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/clipview"
)

// countWidth is the room reserved right of the search box for the match count.
const countWidth = 12

// Empty states.
const (
	loadingText  = "Loading..."
	emptyText    = "Your clipboard is empty"
	noMatchText  = "No items match your search"
	metaSep      = " · "
	selectedMark = "› "
	rowMark      = "  "
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return loadingText
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	s.WriteString(m.renderSeparator())
	s.WriteString("\n")
	s.WriteString(m.renderList())
	if m.preview.Height > 0 {
		s.WriteString("\n")
		s.WriteString(m.renderSeparator())
		s.WriteString("\n")
		s.WriteString(m.preview.View())
	}
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

func (m Model) renderHeader() string {
	count := fmt.Sprintf("%d/%d", m.list.Len(), len(m.list.Items()))
	left := m.search.View()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	meta := m.style(m.theme.Styles().Meta)
	return left + strings.Repeat(" ", gap) + meta.Render(count)
}

func (m Model) renderSeparator() string {
	return m.style(m.theme.Styles().Border).Render(strings.Repeat("─", max(m.width, 1)))
}

func (m Model) renderList() string {
	lines := make([]string, 0, m.listHeight)

	switch {
	case m.list.Loading():
		lines = append(lines, m.style(m.theme.Styles().Meta).Render(loadingText))
	case m.list.Len() == 0 && m.list.Searching():
		lines = append(lines, m.style(m.theme.Styles().Meta).Render(noMatchText))
	case m.list.Len() == 0:
		lines = append(lines, m.style(m.theme.Styles().Meta).Render(emptyText))
	default:
		selected := m.list.SelectedIndex()
		for row := 0; row < m.listHeight; row++ {
			idx := m.offset + row
			it, ok := m.list.At(idx)
			if !ok {
				break
			}
			lines = append(lines, m.renderRow(idx, it, idx == selected))
		}
	}

	for len(lines) < m.listHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one history item on a single line:
// cursor, quick-paste digit, type badge, highlighted content, then metadata
// right-aligned.
func (m Model) renderRow(idx int, it clipview.Item, selected bool) string {
	styles := m.theme.Styles()
	palette := m.theme.Palette()

	base := m.style(styles.Item)
	if selected {
		base = m.style(styles.Selected)
	}
	withBase := func(cp clipview.ColorPair) lipgloss.Style {
		st := m.style(cp)
		if selected && cp.Background == "" && styles.Selected.Background != "" {
			st = st.Background(lipgloss.Color(styles.Selected.Background))
		}
		return st
	}

	mark := rowMark
	if selected {
		mark = selectedMark
	}
	shortcut := "  "
	if idx < 9 {
		shortcut = fmt.Sprintf("%d ", idx+1)
	}
	t := it.Type()
	badge := withBase(clipview.ColorPair{Foreground: string(palette.ForType(t))}).Bold(true).
		Render(fmt.Sprintf("%-4s", t.Label()))

	prefix := base.Render(mark) + withBase(styles.Shortcut).Render(shortcut) + badge + base.Render(" ")
	prefixWidth := lipgloss.Width(mark) + lipgloss.Width(shortcut) + 4 + 1

	meta := m.rowMeta(it)
	metaWidth := lipgloss.Width(meta)
	textWidth := m.width - prefixWidth - metaWidth - 1
	if textWidth < 10 {
		// Narrow terminal: drop the metadata before the content.
		meta, metaWidth = "", 0
		textWidth = m.width - prefixWidth
	}

	text := singleLine(clipview.FormatContent(it.Content, t))
	text = ansi.Truncate(text, max(textWidth, 0), "…")

	var sb strings.Builder
	sb.WriteString(prefix)
	match := m.style(styles.Match).Bold(true)
	for _, seg := range clipview.Highlight(text, m.list.Query()) {
		if seg.Matched {
			sb.WriteString(match.Render(seg.Text))
		} else {
			sb.WriteString(base.Render(seg.Text))
		}
	}

	used := prefixWidth + lipgloss.Width(text)
	if pad := m.width - used - metaWidth; pad > 0 {
		sb.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
	if meta != "" {
		sb.WriteString(withBase(styles.Meta).Render(meta))
	}
	return sb.String()
}

func (m Model) rowMeta(it clipview.Item) string {
	parts := []string{clipview.RelativeTime(m.now(), it.Timestamp)}
	if it.SourceApp != "" {
		parts = append(parts, singleLine(it.SourceApp))
	}
	parts = append(parts, clipview.SizeInfo(it.Content))
	return strings.Join(parts, metaSep)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.banner != "" {
		return m.style(styles.Error).Render(ansi.Truncate(singleLine(m.banner), max(m.width, 1), "…"))
	}
	km := m.keymap
	var help []string
	for _, b := range []struct{ key, desc string }{
		{km.Paste.Help().Key, km.Paste.Help().Desc},
		{km.QuickPaste.Help().Key, km.QuickPaste.Help().Desc},
		{km.Delete.Help().Key, km.Delete.Help().Desc},
		{km.Escape.Help().Key, km.Escape.Help().Desc},
	} {
		help = append(help, b.key+" "+b.desc)
	}
	return m.style(styles.Meta).Render(ansi.Truncate(strings.Join(help, metaSep), max(m.width, 1), "…"))
}

// updatePreview renders the selected item's full content into the preview
// viewport.
func (m *Model) updatePreview() {
	if !m.ready || m.preview.Height == 0 {
		return
	}
	it, ok := m.list.Selected()
	if !ok {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(m.renderPreview(it))
	m.preview.GotoTop()
}

func (m Model) renderPreview(it clipview.Item) string {
	t := it.Type()
	content := clipview.Sanitize(it.Content)
	if t == clipview.TypeJSON {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(strings.TrimSpace(content)), "", "  "); err == nil {
			content = buf.String()
		}
	}

	var lines []string
	if m.tokenizer != nil && m.detector != nil {
		if lang := m.detector.DetectFromContent(content, t); lang != "" {
			for _, tokens := range m.tokenizer.TokenizeLines(lang, content) {
				lines = append(lines, m.renderTokens(tokens))
			}
		}
	}
	if lines == nil {
		base := m.style(m.theme.Styles().Item)
		for _, line := range strings.Split(content, "\n") {
			expanded, _ := expandTabs(line, 0)
			lines = append(lines, base.Render(ansi.Truncate(expanded, max(m.width, 1), "…")))
		}
	}
	return strings.Join(lines, "\n")
}

// renderTokens renders one line of syntax tokens with the theme's foreground
// as the fallback color.
func (m Model) renderTokens(tokens []clipview.Token) string {
	fallback := string(m.theme.Palette().Foreground)
	var sb strings.Builder
	col := 0
	for _, tok := range tokens {
		var text string
		text, col = expandTabs(tok.Text, col)
		if col > m.width {
			break
		}
		fg := tok.Style.Foreground
		if fg == "" {
			fg = fallback
		}
		style := m.style(clipview.ColorPair{Foreground: fg})
		if tok.Style.Bold {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(text))
	}
	return sb.String()
}

// style creates a lipgloss style from a ColorPair.
// If no renderer is set, the default lipgloss renderer is used.
func (m Model) style(cp clipview.ColorPair) lipgloss.Style {
	var style lipgloss.Style
	if m.renderer != nil {
		style = m.renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// singleLine sanitizes s and folds line breaks and tabs into spaces.
func singleLine(s string) string {
	return clipview.Sanitize(strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s))
}

// expandTabs converts tabs to spaces using 8-column tab stops, starting at
// column col. It returns the expanded text and the column after it, so a
// line split into tokens can be expanded token by token.
func expandTabs(s string, col int) (string, int) {
	if !strings.Contains(s, "\t") {
		return s, col + lipgloss.Width(s)
	}

	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			next := ((col / tabWidth) + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		sb.WriteRune(r)
		col += lipgloss.Width(string(r))
	}
	return sb.String(), col
}

// tabWidth is the distance between tab stops in the preview pane.
const tabWidth = 8
