package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinTokenLength is the shortest run of word characters kept as a token.
const MinTokenLength = 2

// Tokenize lowercases text and splits it into maximal runs of word
// characters (letters, digits, marks and underscore). Runs shorter than
// MinTokenLength runes are dropped, so single letters never become terms.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = appendToken(tokens, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = appendToken(tokens, text[start:])
	}
	return tokens
}

func appendToken(tokens []string, tok string) []string {
	if utf8.RuneCountInString(tok) < MinTokenLength {
		return tokens
	}
	return append(tokens, tok)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}
