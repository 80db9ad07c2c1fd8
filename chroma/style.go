package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/clipview"
)

// StyleFromPalette returns a function that maps chroma token types to clipview styles
// based on the provided palette colors. Whole token categories share a color so
// the lexers for shell, JSON and markdown previews are covered alongside code.
func StyleFromPalette(p clipview.Palette) StyleFunc {
	return func(tt chromalib.TokenType) clipview.Style {
		switch {
		// Type keywords (handled separately from other keywords)
		case tt == chromalib.KeywordType:
			return clipview.Style{Foreground: string(p.Type), Bold: true}
		case tt.InCategory(chromalib.Keyword):
			return clipview.Style{Foreground: string(p.Keyword), Bold: true}
		case tt.InCategory(chromalib.Comment):
			return clipview.Style{Foreground: string(p.Comment)}
		case tt.InSubCategory(chromalib.LiteralString):
			return clipview.Style{Foreground: string(p.String)}
		case tt.InSubCategory(chromalib.LiteralNumber):
			return clipview.Style{Foreground: string(p.Number)}
		case tt.InCategory(chromalib.Operator):
			return clipview.Style{Foreground: string(p.Operator)}
		}

		switch tt {
		case chromalib.NameFunction, chromalib.NameFunctionMagic, chromalib.NameAttribute:
			return clipview.Style{Foreground: string(p.Function)}
		case chromalib.NameBuiltin, chromalib.NameBuiltinPseudo:
			return clipview.Style{Foreground: string(p.Type)}
		// JSON object keys and HTML tags
		case chromalib.NameTag:
			return clipview.Style{Foreground: string(p.Keyword)}
		case chromalib.NameConstant, chromalib.NameVariable:
			return clipview.Style{Foreground: string(p.Constant)}
		case chromalib.Punctuation:
			return clipview.Style{Foreground: string(p.Punctuation)}
		// Markdown
		case chromalib.GenericHeading, chromalib.GenericSubheading:
			return clipview.Style{Foreground: string(p.Function), Bold: true}
		case chromalib.GenericStrong:
			return clipview.Style{Bold: true}
		default:
			return clipview.Style{}
		}
	}
}
