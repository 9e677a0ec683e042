package mediaquery

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/mqscaffold/internal/classes"
)

// Block is a breakpoint block recovered from a previously written stylesheet.
type Block struct {
	Label   string       // Header label, may be stale
	Width   string       // "480px", taken from the media query
	Header  string       // Width written in the header comment
	Content string       // Body text, reproduced verbatim on the next write
	Classes *classes.Set // Classes with a top-level single-class rule in the body
}

// Existing maps a breakpoint width to the block recovered for it.
type Existing map[string]Block

var (
	// /* mobile (480px) */
	headerPattern = regexp.MustCompile(`(?s)^(.*?)\s*\(([0-9]+px)\)$`)
	// (max-width:480px), whitespace already removed
	queryPattern = regexp.MustCompile(`(?i)^\(max-width:([0-9]+px)\)$`)
)

type token struct {
	tt    css.TokenType
	text  string
	start int
	end   int
}

// ParseExisting recovers breakpoint blocks from a stylesheet written by a
// previous run. Block boundaries are found by brace depth over CSS tokens,
// so nested rules and braces in strings or comments are safe.
//
// Top-level statements that are not a header comment directly followed by
// a max-width media query are not recovered. One warning is returned per
// such statement because the next write drops them.
func ParseExisting(text string) (Existing, []string) {
	existing := make(Existing)
	if text == "" {
		return existing, nil
	}

	var warnings []string
	toks, err := tokenize(text)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("stopped reading existing output: %v", err))
	}

	s := &scanner{text: text, toks: toks}
	for i := 0; i < len(toks); {
		switch toks[i].tt {
		case css.WhitespaceToken:
			i++
			continue
		case css.CommentToken:
			if block, next, ok := s.block(i); ok {
				if block.Header != block.Width {
					warnings = append(warnings, fmt.Sprintf(
						"line %d: header says %s but the media query uses %s; the block is kept under %s",
						s.line(i), block.Header, block.Width, block.Width))
				}
				// A repeated width replaces the earlier block.
				existing[block.Width] = block
				i = next
				continue
			}
		}

		next := s.skipStatement(i)
		warnings = append(warnings, fmt.Sprintf("line %d: %q is not a breakpoint block and will be dropped",
			s.line(i), s.excerpt(i, next)))
		i = next
	}

	return existing, warnings
}

func tokenize(text string) ([]token, error) {
	input := parse.NewInputString(text)
	lexer := css.NewLexer(input)

	var toks []token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != io.EOF {
				return toks, err
			}
			return toks, nil
		}
		end := input.Offset()
		toks = append(toks, token{
			tt:    tt,
			text:  string(data),
			start: end - len(data),
			end:   end,
		})
	}
}

type scanner struct {
	text string
	toks []token
}

// block reads a header comment at i and the media query that follows it.
// It returns the index just past the closing brace.
func (s *scanner) block(i int) (Block, int, bool) {
	label, header, ok := parseHeader(s.toks[i].text)
	if !ok {
		return Block{}, 0, false
	}

	j := s.skipSpace(i + 1)
	if j >= len(s.toks) || s.toks[j].tt != css.AtKeywordToken || !strings.EqualFold(s.toks[j].text, "@media") {
		return Block{}, 0, false
	}

	var query strings.Builder
	open := j + 1
	for ; open < len(s.toks); open++ {
		tok := s.toks[open]
		if tok.tt == css.LeftBraceToken {
			break
		}
		switch tok.tt {
		case css.SemicolonToken, css.RightBraceToken:
			return Block{}, 0, false
		case css.WhitespaceToken, css.CommentToken:
			continue
		}
		query.WriteString(tok.text)
	}
	if open >= len(s.toks) {
		return Block{}, 0, false
	}

	m := queryPattern.FindStringSubmatch(query.String())
	if m == nil {
		return Block{}, 0, false
	}

	closing, ok := s.matchBrace(open)
	if !ok {
		return Block{}, 0, false
	}

	body := s.text[s.toks[open].end:s.toks[closing].start]
	return Block{
		Label:   label,
		Width:   m[1],
		Header:  header,
		Content: trimBody(body),
		Classes: declaredClasses(s.toks[open+1 : closing]),
	}, closing + 1, true
}

// matchBrace returns the index of the brace closing the one at open.
func (s *scanner) matchBrace(open int) (int, bool) {
	depth := 0
	for k := open; k < len(s.toks); k++ {
		switch s.toks[k].tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth == 0 {
				return k, true
			}
		}
	}
	return 0, false
}

// skipStatement returns the index past the top-level statement at i.
func (s *scanner) skipStatement(i int) int {
	if s.toks[i].tt == css.CommentToken {
		return i + 1
	}

	depth := 0
	for k := i; k < len(s.toks); k++ {
		switch s.toks[k].tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth <= 0 {
				return k + 1
			}
		case css.SemicolonToken:
			if depth == 0 {
				return k + 1
			}
		}
	}
	return len(s.toks)
}

func (s *scanner) skipSpace(i int) int {
	for i < len(s.toks) && s.toks[i].tt == css.WhitespaceToken {
		i++
	}
	return i
}

func (s *scanner) line(i int) int {
	return strings.Count(s.text[:s.toks[i].start], "\n") + 1
}

// excerpt returns a single-line preview of tokens [i, next).
func (s *scanner) excerpt(i, next int) string {
	raw := s.text[s.toks[i].start:s.toks[next-1].end]
	text := strings.Join(strings.Fields(raw), " ")
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	return text
}

// parseHeader extracts label and width from "/* mobile (480px) */".
func parseHeader(comment string) (string, string, bool) {
	inner := strings.TrimPrefix(comment, "/*")
	inner = strings.TrimSuffix(inner, "*/")
	m := headerPattern.FindStringSubmatch(strings.TrimSpace(inner))
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), m[2], true
}

// trimBody drops leading blank lines and trailing whitespace. Indentation of
// the first non-blank line is kept so rewritten blocks stay byte-identical.
func trimBody(body string) string {
	body = strings.TrimRight(body, " \t\r\n")
	for {
		nl := strings.IndexByte(body, '\n')
		if nl < 0 || strings.TrimSpace(body[:nl]) != "" {
			break
		}
		body = body[nl+1:]
	}
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return body
}

// declaredClasses collects class names that own a top-level rule in a block
// body, such as ".foo { ... }" or ".foo, .bar { ... }". Compound selectors,
// pseudo-classes and nested rules do not count.
func declaredClasses(toks []token) *classes.Set {
	set := classes.NewSet()

	var prelude []token
	depth := 0
	for _, tok := range toks {
		switch tok.tt {
		case css.LeftBraceToken:
			if depth == 0 {
				addBareClasses(set, prelude)
				prelude = prelude[:0]
			}
			depth++
		case css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken:
			if depth == 0 {
				prelude = prelude[:0]
			}
		case css.WhitespaceToken, css.CommentToken:
		default:
			if depth == 0 {
				prelude = append(prelude, tok)
			}
		}
	}

	return set
}

func addBareClasses(set *classes.Set, prelude []token) {
	start := 0
	for k := 0; k <= len(prelude); k++ {
		if k < len(prelude) && prelude[k].tt != css.CommaToken {
			continue
		}
		part := prelude[start:k]
		if len(part) == 2 &&
			classes.IsClassDot(part[0].tt, []byte(part[0].text)) &&
			classes.IsClassName(part[1].tt) {
			set.Add(classes.Unescape(part[1].text))
		}
		start = k + 1
	}
}
