package terms

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper removes combining marks after NFD decomposition, so
// "résumé" and "resume" normalize to the same form.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize lowercases text and strips accents.
func normalize(s string) string {
	folded, _, err := transform.String(accentStripper, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// token is a single word produced by tokenize. hard marks a punctuation
// boundary before the token: n-grams never span such a boundary.
type token struct {
	text string
	hard bool
}

// wordJoiners glue two words into a compound token, as in node.js,
// transact-sql and pl/sql.
var wordJoiners = map[rune]bool{'-': true, '.': true, '/': true}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// tokenize splits normalized text into word tokens. Punctuation acts as a
// token boundary, with three exceptions that keep common technology names
// whole: joiner characters between two word characters (node.js), a dot
// directly before a word (.net), and trailing # or + runs (c#, c++).
func tokenize(text string) []token {
	rs := []rune(text)
	var tokens []token

	i := 0
	hard := true
	for i < len(rs) {
		r := rs[i]

		if !isWordRune(r) {
			leadingDot := r == '.' && i+1 < len(rs) && isWordRune(rs[i+1]) &&
				(i == 0 || !isWordRune(rs[i-1]))
			if !leadingDot {
				if !unicode.IsSpace(r) {
					hard = true
				}
				i++
				continue
			}
		}

		start := i
		if rs[i] == '.' {
			i++
		}

		for i < len(rs) {
			if isWordRune(rs[i]) {
				i++
				continue
			}
			if wordJoiners[rs[i]] && i+1 < len(rs) && isWordRune(rs[i+1]) && isWordRune(rs[i-1]) {
				i += 2
				continue
			}
			break
		}

		for i < len(rs) && (rs[i] == '#' || rs[i] == '+') {
			i++
		}

		tokens = append(tokens, token{text: string(rs[start:i]), hard: hard})
		hard = false
	}

	return tokens
}

// Match scans text for configured terms and returns the matched canonical
// names in first-occurrence order, deduplicated per canonical name.
// Matching is exact per normalized n-gram: a term never matches as a
// substring of a longer token, so "java" does not match inside
// "javascript".
func (ts *TermSet) Match(text string) []string {
	window := make([]string, 0, ts.maxN)
	seen := make(map[string]struct{})

	var matched []string
	for _, tok := range tokenize(normalize(text)) {
		if tok.hard {
			window = window[:0]
		}
		if len(window) == ts.maxN {
			copy(window, window[1:])
			window = window[:ts.maxN-1]
		}
		window = append(window, tok.text)

		for n := 1; n <= len(window); n++ {
			canonical, ok := ts.index[strings.Join(window[len(window)-n:], " ")]
			if !ok {
				continue
			}
			if _, dup := seen[canonical]; dup {
				continue
			}
			seen[canonical] = struct{}{}
			matched = append(matched, canonical)
		}
	}

	return matched
}
