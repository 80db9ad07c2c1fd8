package clipview

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Display bounds.
const (
	MaxDisplayLength = 100
	Ellipsis         = "..."

	// dataEdge is how many runes of each end of an opaque blob stay visible.
	dataEdge = 20
)

// Truncate shortens s to at most max runes, appending Ellipsis when cut.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + Ellipsis
}

// FormatContent returns the display form of content for its type, bounded to
// MaxDisplayLength runes plus Ellipsis.
func FormatContent(content string, t ContentType) string {
	switch t {
	case TypeURL:
		return formatURL(content)
	case TypeCode, TypeJSON, TypeCommand:
		return Truncate(strings.Join(strings.Fields(content), " "), MaxDisplayLength)
	case TypeMarkdown:
		return Truncate(strings.TrimSpace(StripMarkdown(content)), MaxDisplayLength)
	case TypeEmail, TypePhone:
		return Truncate(strings.TrimSpace(content), MaxDisplayLength)
	case TypeFilepath:
		return formatFilepath(strings.TrimSpace(content))
	case TypeData:
		return formatData(content)
	default:
		return Truncate(content, MaxDisplayLength)
	}
}

// Format classifies content and returns its display form.
func Format(content string) string {
	return FormatContent(content, Classify(content))
}

func formatURL(content string) string {
	trimmed := strings.TrimSpace(content)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		if rest, ok := strings.CutPrefix(trimmed, "www."); ok {
			return Truncate(rest, MaxDisplayLength)
		}
		return Truncate(content, MaxDisplayLength)
	}

	display := strings.TrimPrefix(u.Hostname(), "www.")
	if path := u.EscapedPath(); path != "/" {
		display += path
	}
	if utf8.RuneCountInString(display) > MaxDisplayLength {
		return Truncate(display, MaxDisplayLength)
	}
	if u.RawQuery != "" {
		display += Ellipsis
	}
	return display
}

var pathSeparators = regexp.MustCompile(`[/\\]`)

// formatFilepath keeps the file name and its parent visible for long paths.
func formatFilepath(path string) string {
	parts := pathSeparators.Split(path, -1)
	if len(parts) > 2 && utf8.RuneCountInString(path) > MaxDisplayLength {
		short := ".../" + parts[len(parts)-2] + "/" + parts[len(parts)-1]
		return Truncate(short, MaxDisplayLength)
	}
	return Truncate(path, MaxDisplayLength)
}

// formatData shows both ends of an opaque blob so it can be matched visually.
func formatData(content string) string {
	runes := []rune(content)
	if len(runes) <= MaxDisplayLength {
		return content
	}
	return string(runes[:dataEdge]) + Ellipsis + string(runes[len(runes)-dataEdge:])
}

var (
	mdFence      = regexp.MustCompile("(?s)```.*?```")
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}\s`)
	mdList       = regexp.MustCompile(`(?m)^[-*+]\s`)
	mdNumbered   = regexp.MustCompile(`(?m)^\d+\.\s`)
	mdQuote      = regexp.MustCompile(`(?m)^>\s`)
	mdImage      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic     = regexp.MustCompile(`\*(.*?)\*`)
	mdInlineCode = regexp.MustCompile("`(.*?)`")
)

// StripMarkdown removes markdown markup, keeping the inner text. Fenced code
// blocks become a "[code block]" placeholder and list or quote markers
// become bullets.
func StripMarkdown(s string) string {
	s = mdFence.ReplaceAllString(s, "[code block]")
	s = mdHeading.ReplaceAllString(s, "")
	s = mdList.ReplaceAllString(s, "• ")
	s = mdNumbered.ReplaceAllString(s, "• ")
	s = mdQuote.ReplaceAllString(s, "")
	s = mdImage.ReplaceAllString(s, "${1}")
	s = mdLink.ReplaceAllString(s, "${1}")
	s = mdBold.ReplaceAllString(s, "${1}")
	s = mdItalic.ReplaceAllString(s, "${1}")
	s = mdInlineCode.ReplaceAllString(s, "${1}")
	return s
}

// RelativeTime renders a capture timestamp (Unix seconds) relative to now.
func RelativeTime(now time.Time, timestamp int64) string {
	seconds := now.Unix() - timestamp
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 7*86400:
		return fmt.Sprintf("%dd ago", seconds/86400)
	default:
		return time.Unix(timestamp, 0).In(now.Location()).Format("Jan 2, 2006")
	}
}

// SizeInfo summarises the size of content as lines, words or characters.
func SizeInfo(content string) string {
	if lines := strings.Count(content, "\n") + 1; lines > 1 {
		return fmt.Sprintf("%d lines", lines)
	}
	if words := len(strings.Fields(content)); words > 20 {
		return fmt.Sprintf("%d words", words)
	}
	return fmt.Sprintf("%d chars", utf8.RuneCountInString(content))
}
