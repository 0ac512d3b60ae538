package score

import (
	"sort"
	"strings"
)

// stressMarker is the leading apostrophe lexconvert puts on stressed vowels.
const stressMarker = "'"

// Tokenizer converts a flat phoneme string into classified phonemes. It
// matches the configured symbol tables maximal-munch (longest symbol
// first), so ambiguous pairs like "lx"/"l" and "rx"/"r" resolve to the
// longer form without relying on table order.
type Tokenizer struct {
	vowels     []string
	consonants []string
	separator  string
}

// NewTokenizer builds a tokenizer from the configured symbol tables.
func NewTokenizer(cfg Config) *Tokenizer {
	return &Tokenizer{
		vowels:     sortByLengthDesc(cfg.Vowels),
		consonants: sortByLengthDesc(cfg.Consonants),
		separator:  cfg.WordSeparator,
	}
}

// sortByLengthDesc copies symbols and orders them longest first, keeping
// the original order between symbols of equal length.
func sortByLengthDesc(symbols []string) []string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return sorted
}

// Tokenize parses input like "hxehl'ow, w'rrld" into classified phonemes.
//
// Each position is matched against, in order: the vowel table (with an
// optional leading stress apostrophe, kept on the matched symbol), the
// consonant table, and the word separator. If nothing matches, Tokenize
// returns the phonemes produced so far together with a *ParseError; the
// partial result remains usable.
func (t *Tokenizer) Tokenize(input string) ([]Phoneme, error) {
	var tokens []Phoneme

	pos := 0
	for pos < len(input) {
		if symbol, ok := t.matchVowel(input[pos:]); ok {
			tokens = append(tokens, Phoneme{Symbol: symbol, Category: Vowel})
			pos += len(symbol)
			continue
		}
		if symbol, ok := matchSymbol(input[pos:], t.consonants); ok {
			tokens = append(tokens, Phoneme{Symbol: symbol, Category: Consonant})
			pos += len(symbol)
			continue
		}
		if strings.HasPrefix(input[pos:], t.separator) {
			tokens = append(tokens, Phoneme{Symbol: t.separator, Category: WordBoundary})
			pos += len(t.separator)
			continue
		}
		return tokens, &ParseError{Offset: pos, Remainder: input[pos:]}
	}

	return tokens, nil
}

// matchVowel matches a vowel symbol, optionally prefixed with a stress
// marker. The marker is part of the returned symbol.
func (t *Tokenizer) matchVowel(s string) (string, bool) {
	stressed := strings.HasPrefix(s, stressMarker)
	if stressed {
		s = s[len(stressMarker):]
	}
	symbol, ok := matchSymbol(s, t.vowels)
	if !ok {
		return "", false
	}
	if stressed {
		symbol = stressMarker + symbol
	}
	return symbol, true
}

// matchSymbol returns the first (i.e. longest) table symbol that prefixes s.
func matchSymbol(s string, table []string) (string, bool) {
	for _, symbol := range table {
		if strings.HasPrefix(s, symbol) {
			return symbol, true
		}
	}
	return "", false
}

// Serialize joins phonemes back into the tokenizer's input form. Word
// boundaries carry their separator text, so tokenizing the result again
// yields the same phonemes.
func Serialize(tokens []Phoneme) string {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(token.Symbol)
	}
	return b.String()
}
