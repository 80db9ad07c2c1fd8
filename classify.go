package clipview

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ContentType is the inferred category of a clipboard string.
type ContentType int

// Content types. The zero value is plain text.
const (
	TypeText ContentType = iota
	TypeURL
	TypeEmail
	TypePhone
	TypeCode
	TypeJSON
	TypeFilepath
	TypeCommand
	TypeMarkdown
	TypeData
)

var contentTypeNames = [...]string{
	TypeText:     "text",
	TypeURL:      "url",
	TypeEmail:    "email",
	TypePhone:    "phone",
	TypeCode:     "code",
	TypeJSON:     "json",
	TypeFilepath: "filepath",
	TypeCommand:  "command",
	TypeMarkdown: "markdown",
	TypeData:     "data",
}

// String returns the lower-case name of the type.
func (t ContentType) String() string {
	if t < 0 || int(t) >= len(contentTypeNames) {
		return contentTypeNames[TypeText]
	}
	return contentTypeNames[t]
}

// Label returns a short fixed-width badge for list rendering.
func (t ContentType) Label() string {
	switch t {
	case TypeURL:
		return "URL"
	case TypeEmail:
		return "MAIL"
	case TypePhone:
		return "TEL"
	case TypeCode:
		return "CODE"
	case TypeJSON:
		return "JSON"
	case TypeFilepath:
		return "PATH"
	case TypeCommand:
		return "CMD"
	case TypeMarkdown:
		return "MD"
	case TypeData:
		return "DATA"
	default:
		return "TEXT"
	}
}

// ContentTypes returns every content type in declaration order.
func ContentTypes() []ContentType {
	types := make([]ContentType, len(contentTypeNames))
	for i := range contentTypeNames {
		types[i] = ContentType(i)
	}
	return types
}

// Rule is a named classification predicate. Eval reports the type it assigns
// and whether the rule matched.
type Rule struct {
	Name string
	Eval func(content string) (ContentType, bool)
}

// Classifier evaluates rules in order against trimmed content; the first
// matching rule decides the type.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the given ordered rules.
// With no rules it uses DefaultRules.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Rules returns a copy of the classifier's rule table.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the content type for content. It never fails; content
// no rule claims is text.
func (c *Classifier) Classify(content string) ContentType {
	trimmed := strings.TrimSpace(content)
	for _, r := range c.rules {
		if t, ok := r.Eval(trimmed); ok {
			return t
		}
	}
	return TypeText
}

var defaultClassifier = NewClassifier()

// Classify returns the content type for content using the default rules.
func Classify(content string) ContentType {
	return defaultClassifier.Classify(content)
}

// DefaultRules returns the built-in rule table. Order encodes specificity:
// narrow patterns come before the broad code and markdown heuristics.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "empty", Eval: as(TypeText, func(s string) bool { return s == "" })},
		{Name: "url", Eval: as(TypeURL, isURL)},
		{Name: "email", Eval: as(TypeEmail, emailPattern.MatchString)},
		{Name: "phone", Eval: as(TypePhone, isPhone)},
		{Name: "code", Eval: as(TypeCode, isCode)},
		{Name: "json", Eval: classifyBracketed},
		{Name: "filepath", Eval: as(TypeFilepath, matchesAny(filepathPatterns))},
		{Name: "command", Eval: as(TypeCommand, matchesAny(commandPatterns))},
		{Name: "markdown", Eval: as(TypeMarkdown, isMarkdown)},
		{Name: "data", Eval: as(TypeData, isData)},
	}
}

func as(t ContentType, pred func(string) bool) func(string) (ContentType, bool) {
	return func(s string) (ContentType, bool) {
		if pred(s) {
			return t, true
		}
		return TypeText, false
	}
}

func matchesAny(patterns []*regexp.Regexp) func(string) bool {
	return func(s string) bool {
		for _, p := range patterns {
			if p.MatchString(s) {
				return true
			}
		}
		return false
	}
}

var (
	urlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^https?://`),
		regexp.MustCompile(`^www\.[\w\-.]+`),
		regexp.MustCompile(`(?i)^[\w\-.]+\.(com|org|net|edu|gov|mil|int|co|io|ly|me|tv|dev|app|site|tech)[\w/?&=\-.%#]*$`),
	}

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	phoneStrip      = regexp.MustCompile(`[\s\-()+.]`)
	phoneDigits     = regexp.MustCompile(`^\d{7,15}$`)
	phoneSeparators = regexp.MustCompile(`[()\-+\s.]`)

	indentedLine   = regexp.MustCompile(`(?m)^ {2,}`)
	semicolonBreak = regexp.MustCompile(`;\s*\n`)
	codePatterns   = []*regexp.Regexp{
		regexp.MustCompile(`^(function|const|let|var|class|import|export|interface|type|async|await)\s`),
		regexp.MustCompile(`^(def |class |import |from |if __name__|print\()`),
		regexp.MustCompile(`^[.#]?[\w\-]+\s*\{`),
		regexp.MustCompile(`^@(media|import|keyframes)`),
		regexp.MustCompile(`^<[a-zA-Z][^>]*>`),
		regexp.MustCompile(`^(sudo |npm |git |cd |ls |mkdir |rm |cp |mv )\s`),
		// "# " is left to the markdown heading rule.
		regexp.MustCompile(`^\s*(//|/\*|\*/|<!--|#!|#[^\s#])`),
		regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*\s*[=:]\s*[^=]`),
		regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*\(`),
	}

	filepathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^([/~]|[A-Za-z]:[\\/])`),
		regexp.MustCompile(`^\.\.?[/\\]`),
		regexp.MustCompile(`[/\\][^/\\]*\.[a-zA-Z0-9]{1,10}$`),
	}

	commandPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(sudo|npm|git|cd|ls|mkdir|rm|cp|mv|curl|wget|ssh|scp|rsync|find|grep|awk|sed|sort|uniq|head|tail|cat|less|more|vim|nano|emacs|python|node|java|gcc|make|cmake|docker|kubectl|helm|terraform)\s`),
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*\s+--?[a-zA-Z]`),
		regexp.MustCompile(`\s--?[a-zA-Z][a-zA-Z0-9\-]*(\s|=|$)`),
	}

	markdownPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^#{1,6}\s`),
		regexp.MustCompile(`^\*\*.*\*\*`),
		regexp.MustCompile(`^\*.*\*`),
		regexp.MustCompile("^```"),
		regexp.MustCompile("^`.*`"),
		regexp.MustCompile(`^\[.*\]\(.*\)`),
		regexp.MustCompile(`^!\[.*\]\(.*\)`),
		regexp.MustCompile(`^[-*+]\s`),
		regexp.MustCompile(`^\d+\.\s`),
		regexp.MustCompile(`^>\s`),
	}
)

var isURL = matchesAny(urlPatterns)

// isPhone requires 7-15 digits once separators are removed and at least one
// separator in the original, so bare digit runs stay text.
func isPhone(s string) bool {
	digits := phoneStrip.ReplaceAllString(s, "")
	return phoneDigits.MatchString(digits) && phoneSeparators.MatchString(s)
}

func isCode(s string) bool {
	if indentedLine.MatchString(s) || strings.Contains(s, "\t") {
		return true
	}
	if semicolonBreak.MatchString(s) {
		return true
	}
	return matchesAny(codePatterns)(s)
}

// classifyBracketed recognises JSON documents. Bracketed text that fails to
// parse but contains braces is treated as code.
func classifyBracketed(s string) (ContentType, bool) {
	objectLike := strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
	arrayLike := strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
	if !objectLike && !arrayLike {
		return TypeText, false
	}
	if json.Valid([]byte(s)) {
		return TypeJSON, true
	}
	if strings.Contains(s, "{") && strings.Contains(s, "}") {
		return TypeCode, true
	}
	return TypeText, false
}

func isMarkdown(s string) bool {
	if matchesAny(markdownPatterns)(s) {
		return true
	}
	return strings.Contains(s, "```") || strings.Contains(s, "**")
}

func isData(s string) bool {
	return utf8.RuneCountInString(s) > 200 &&
		!strings.Contains(s, "\n") &&
		!strings.Contains(s, " ")
}
