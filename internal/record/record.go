// Package record implements the escaped pipe-delimited line format used by
// the save file. Fields may contain the delimiter, the escape character, and
// newlines; Escape/Unescape make them safe for a line-oriented store.
package record

import "strings"

// Delimiter separates fields within a record line.
const Delimiter = '|'

// Escape makes s safe for embedding in a record line:
// '\' -> `\\`, '|' -> `\|`, newline -> the two characters `\n`.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case Delimiter:
			b.WriteString(`\|`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Unescape reverses Escape: `\n` becomes a newline, any other escaped
// character becomes itself. A trailing lone backslash passes through
// unchanged.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			if next == 'n' {
				b.WriteByte('\n')
			} else {
				b.WriteByte(next)
			}
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Split scans a record line honoring escape state, splits on unescaped
// delimiters, and unescapes each field. Always yields at least one field.
func Split(line string) []string {
	var parts []string
	var cur strings.Builder
	esc := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case esc:
			cur.WriteByte('\\')
			cur.WriteByte(c)
			esc = false
		case c == '\\':
			esc = true
		case c == Delimiter:
			parts = append(parts, Unescape(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if esc {
		cur.WriteByte('\\')
	}
	parts = append(parts, Unescape(cur.String()))
	return parts
}

// Join escapes each field and joins them with the delimiter, the inverse of
// Split.
func Join(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, string(Delimiter))
}
