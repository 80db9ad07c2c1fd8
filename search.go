package clipview

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Segment is a run of display text, marked when it matches a search term.
type Segment struct {
	Text    string // The text content of this segment
	Matched bool   // True if this segment matches a search term
}

// NormalizeQuery trims and lower-cases a raw search query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether item matches query: an empty query matches
// everything, otherwise the query must be a case-insensitive substring of the
// content or the source application.
func Matches(item Item, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(item.Content), q) {
		return true
	}
	return item.SourceApp != "" && strings.Contains(strings.ToLower(item.SourceApp), q)
}

// Filter returns the items matching query, preserving order.
func Filter(items []Item, query string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if Matches(it, query) {
			out = append(out, it)
		}
	}
	return out
}

// Sanitize makes text safe to print in a terminal: ANSI escape sequences are
// removed and other control characters, except newline and tab, are replaced
// with U+FFFD. Sanitize is idempotent.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}

// Highlight sanitizes text and splits it into segments, marking every
// case-insensitive occurrence of the given terms. Longer terms are matched
// first and shorter terms never re-mark text a longer term already claimed.
// Joining the segment texts yields Sanitize(text).
func Highlight(text string, terms ...string) []Segment {
	text = Sanitize(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	folded := foldRunes(runes)
	marked := make([]bool, len(runes))

	for _, term := range sortTerms(terms) {
		markTerm(folded, foldRunes([]rune(term)), marked)
	}

	var segs []Segment
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || marked[i] != marked[start] {
			segs = append(segs, Segment{Text: string(runes[start:i]), Matched: marked[start]})
			start = i
		}
	}
	return segs
}

// sortTerms drops blank terms and orders the rest longest first.
func sortTerms(terms []string) []string {
	valid := make([]string, 0, len(terms))
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			valid = append(valid, t)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return len([]rune(valid[i])) > len([]rune(valid[j]))
	})
	return valid
}

func markTerm(text, term []rune, marked []bool) {
	n := len(term)
	for i := 0; i+n <= len(text); {
		if runesEqual(text[i:i+n], term) && !anyMarked(marked[i:i+n]) {
			for k := i; k < i+n; k++ {
				marked[k] = true
			}
			i += n
			continue
		}
		i++
	}
}

func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func anyMarked(m []bool) bool {
	for _, v := range m {
		if v {
			return true
		}
	}
	return false
}
