package classes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unescape decodes CSS identifier escapes: `\3A ` and `\:` both become ":".
func Unescape(ident string) string {
	if !strings.ContainsRune(ident, '\\') {
		return ident
	}

	var b strings.Builder
	b.Grow(len(ident))

	for i := 0; i < len(ident); {
		c := ident[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}

		i++
		if i >= len(ident) {
			// A trailing backslash cannot start an escape.
			b.WriteRune(utf8.RuneError)
			break
		}

		// Hex escape: up to 6 hex digits, optionally followed by one whitespace.
		j := i
		for j < len(ident) && j-i < 6 && isHex(ident[j]) {
			j++
		}
		if j > i {
			code, _ := strconv.ParseUint(ident[i:j], 16, 32)
			r := rune(code)
			if r == 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
			i = j
			if i < len(ident) {
				switch ident[i] {
				case ' ', '\t', '\n', '\f':
					i++
				case '\r':
					i++
					if i < len(ident) && ident[i] == '\n' {
						i++
					}
				}
			}
			continue
		}

		r, size := utf8.DecodeRuneInString(ident[i:])
		b.WriteRune(r)
		i += size
	}

	return b.String()
}

// Escape encodes name so it can be written after a "." in a selector.
// Unescape(Escape(name)) == name for every name without NUL bytes.
func Escape(name string) string {
	// A lone "-" would lex as a delimiter.
	if name == "-" {
		return `\-`
	}

	var b strings.Builder
	b.Grow(len(name))

	for i, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\%x `, r)
		case r >= '0' && r <= '9':
			// Identifiers cannot start with a digit, nor with "-" and a digit.
			if i == 0 || (i == 1 && name[0] == '-') {
				fmt.Fprintf(&b, `\%x `, r)
			} else {
				b.WriteRune(r)
			}
		case isNameRune(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isNameRune(r rune) bool {
	return r == '-' || r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r >= 0x80
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
