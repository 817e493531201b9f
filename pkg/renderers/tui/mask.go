package tui

import (
	"fmt"
	"unicode"
)

// Mask placeholders: 9 is a digit, a is a letter, * is a letter or digit.
// Every other rune is a literal.
const (
	maskDigit    = '9'
	maskLetter   = 'a'
	maskAlphaNum = '*'
)

func isPlaceholder(r rune) bool {
	return r == maskDigit || r == maskLetter || r == maskAlphaNum
}

func acceptsRune(placeholder, r rune) bool {
	switch placeholder {
	case maskDigit:
		return unicode.IsDigit(r)
	case maskLetter:
		return unicode.IsLetter(r)
	default:
		return unicode.IsDigit(r) || unicode.IsLetter(r)
	}
}

// conformMask returns input shaped by mask. Input may already be formatted
// or hold only the placeholder characters, which are then slotted in.
func conformMask(mask, input string) (string, error) {
	if mask == "" || input == "" {
		return input, nil
	}
	m := []rune(mask)
	in := []rune(input)

	if len(in) == len(m) {
		ok := true
		for i, r := range m {
			if isPlaceholder(r) {
				if !acceptsRune(r, in[i]) {
					ok = false
					break
				}
			} else if in[i] != r {
				ok = false
				break
			}
		}
		if ok {
			return input, nil
		}
	}

	out := make([]rune, 0, len(m))
	pos := 0
	for _, r := range m {
		if !isPlaceholder(r) {
			out = append(out, r)
			continue
		}
		if pos >= len(in) || !acceptsRune(r, in[pos]) {
			return "", fmt.Errorf("must match %s", mask)
		}
		out = append(out, in[pos])
		pos++
	}
	if pos != len(in) {
		return "", fmt.Errorf("must match %s", mask)
	}
	return string(out), nil
}
