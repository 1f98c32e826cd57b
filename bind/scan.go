package bind

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ref is one named parameter reference: sql[start:end] is "@name" or ":name".
type ref struct {
	name  string
	start int
	end   int
}

// scan finds the named references of sql, skipping quoted strings and
// identifiers, comments, PostgreSQL dollar-quoted bodies and "::" casts.
// Unterminated quotes and comments run to the end of the text.
func scan(sql string) []ref {
	var out []ref
	i := 0
	for i < len(sql) {
		r, w := utf8.DecodeRuneInString(sql[i:])
		switch r {
		case '\'', '"', '`':
			i = skipQuoted(sql, i+w, byte(r))
			continue
		case '-':
			if strings.HasPrefix(sql[i:], "--") {
				i = skipLineComment(sql, i+2)
				continue
			}
		case '/':
			if strings.HasPrefix(sql[i:], "/*") {
				i = skipBlockComment(sql, i+2)
				continue
			}
		case '$':
			if j, ok := skipDollarQuoted(sql, i); ok {
				i = j
				continue
			}
		case ':':
			if strings.HasPrefix(sql[i:], "::") {
				i += 2
				continue
			}
			if name, end := parseName(sql, i+1); name != "" {
				out = append(out, ref{name: name, start: i, end: end})
				i = end
				continue
			}
		case '@':
			if strings.HasPrefix(sql[i:], "@@") {
				// system variable, e.g. @@ROWCOUNT
				_, end := parseName(sql, i+2)
				i = max(end, i+2)
				continue
			}
			if name, end := parseName(sql, i+1); name != "" {
				out = append(out, ref{name: name, start: i, end: end})
				i = end
				continue
			}
		}
		i += w
	}
	return out
}

// skipQuoted returns the index after the closing quote; a doubled quote is
// an escaped one.
func skipQuoted(s string, i int, quote byte) int {
	for i < len(s) {
		if s[i] == quote {
			if i+1 < len(s) && s[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return i
}

func skipLineComment(s string, i int) int {
	if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(s)
}

func skipBlockComment(s string, i int) int {
	if j := strings.Index(s[i:], "*/"); j >= 0 {
		return i + j + 2
	}
	return len(s)
}

// skipDollarQuoted handles $$...$$ and $tag$...$tag$ bodies.
func skipDollarQuoted(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) && isNameRune(rune(s[j])) && !unicode.IsDigit(rune(s[j])) {
		j++
	}
	if j >= len(s) || s[j] != '$' {
		return 0, false
	}
	tag := s[i : j+1]
	body := j + 1
	if k := strings.Index(s[body:], tag); k >= 0 {
		return body + k + len(tag), true
	}
	return len(s), true
}

// parseName reads a parameter name starting at i. Names start with a letter
// or underscore.
func parseName(s string, i int) (string, int) {
	start := i
	for i < len(s) {
		r, w := utf8.DecodeRuneInString(s[i:])
		if !isNameRune(r) || (i == start && unicode.IsDigit(r)) {
			break
		}
		i += w
	}
	return s[start:i], i
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
