package classes

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// FromCSS returns every class name used in a selector of the stylesheet,
// including selectors nested in at-rules, in other rules (CSS nesting) and
// in functional pseudo-classes.
//
// Unbalanced braces are reported as errors.
func FromCSS(r io.Reader) (*Set, error) {
	lexer := css.NewLexer(parse.NewInput(r))
	set := NewSet()

	// prelude collects the tokens of the statement being read at the
	// current depth. A "{" makes it a selector (or at-rule prelude), a ";"
	// or "}" makes it a declaration and it is thrown away.
	var prelude []css.Token
	depth, line := 0, 1

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != io.EOF {
				return nil, fmt.Errorf("parse stylesheet: %w", err)
			}
			if depth > 0 {
				return nil, fmt.Errorf("parse stylesheet: unclosed block at line %d", line)
			}
			return set, nil
		case css.LeftBraceToken:
			if !isAtRule(prelude) {
				addSelectorClasses(set, prelude)
			}
			prelude = prelude[:0]
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				return nil, fmt.Errorf("parse stylesheet: unexpected \"}\" on line %d", line)
			}
			prelude = prelude[:0]
			depth--
		case css.SemicolonToken:
			prelude = prelude[:0]
		case css.CommentToken:
		default:
			prelude = append(prelude, css.Token{TokenType: tt, Data: bytes.Clone(text)})
		}
		line += bytes.Count(text, []byte{'\n'})
	}
}

func isAtRule(prelude []css.Token) bool {
	for _, tok := range prelude {
		if tok.TokenType != css.WhitespaceToken {
			return tok.TokenType == css.AtKeywordToken
		}
	}
	return false
}

// addSelectorClasses adds each "." + identifier pair of a selector.
// Attribute selectors are skipped.
func addSelectorClasses(set *Set, tokens []css.Token) {
	brackets := 0
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.TokenType {
		case css.LeftBracketToken:
			brackets++
			continue
		case css.RightBracketToken:
			if brackets > 0 {
				brackets--
			}
			continue
		}
		if brackets > 0 || i+1 >= len(tokens) || !IsClassDot(tok.TokenType, tok.Data) {
			continue
		}
		next := tokens[i+1]
		if !IsClassName(next.TokenType) {
			continue
		}
		set.Add(Unescape(string(next.Data)))
		i++
	}
}

// IsClassDot reports whether a token is the "." that starts a class selector.
func IsClassDot(tt css.TokenType, data []byte) bool {
	return tt == css.DelimToken && len(data) == 1 && data[0] == '.'
}

// IsClassName reports whether a token following "." names a class.
// Names starting with "--" lex as custom property names.
func IsClassName(tt css.TokenType) bool {
	return tt == css.IdentToken || tt == css.CustomPropertyNameToken
}
