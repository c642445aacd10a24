package parser

import "strings"

// Tokenize splits a package line on spaces while keeping quoted spans and
// bracketed spans intact as single tokens.
//
// Emerge lines embed free-form values inside double quotes (USE flag
// lists) and inside brackets (the status token, the old-version token),
// so a plain whitespace split would tear them apart. The scan tracks a
// quote counter and a bracket depth; a space only separates tokens when
// the quote counter is even and the depth is zero.
//
// Unbalanced quotes or brackets are not detected: the counters simply
// keep running, which can mis-split malformed input. That behavior is
// accepted and covered by tests rather than fixed.
func Tokenize(line string) []string {
	var tokens []string
	var buf strings.Builder
	quotes := 0
	depth := 0

	flush := func() {
		if tok := strings.TrimSpace(buf.String()); tok != "" {
			tokens = append(tokens, tok)
		}
		buf.Reset()
	}

	for _, ch := range line {
		buf.WriteRune(ch)
		switch ch {
		case '"':
			quotes++
		case '[':
			depth++
		case ']':
			depth--
		}

		if ch == ' ' && quotes%2 == 0 && depth == 0 {
			flush()
		}
	}
	flush()

	return tokens
}
