package outline

import (
	"strings"
	"unicode/utf8"
)

// NumberingPrefix returns the section number that opens text, such as "2.1"
// in "2.1 Methods" or "A-1" in "A-1. Overview". The number is one or more
// groups of A-Z/0-9 joined by '.' or '-', optionally followed by a single '.',
// and must be followed by whitespace. The trailing '.' is not part of the
// returned token.
func NumberingPrefix(text string) (string, bool) {
	s := skipSpace(text)

	n := groupLen(s)
	if n == 0 {
		return "", false
	}
	end := n
	for end < len(s) && (s[end] == '.' || s[end] == '-') {
		g := groupLen(s[end+1:])
		if g == 0 {
			break
		}
		end += 1 + g
	}
	token := s[:end]

	rest := s[end:]
	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if rest == "" || !isSpace(r) {
		return "", false
	}
	return token, true
}

// LevelFor infers the nesting level of a heading from its numbering prefix.
// Unnumbered headings are top level.
func LevelFor(text string, maxLevel int) Level {
	token, ok := NumberingPrefix(text)
	if !ok {
		return H1
	}
	depth := strings.Count(token, ".") + strings.Count(token, "-") + 1
	return Level(min(depth, maxLevel))
}

func groupLen(s string) int {
	i := 0
	for i < len(s) && isGroupByte(s[i]) {
		i++
	}
	return i
}

func isGroupByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
