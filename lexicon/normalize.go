package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer decomposes accented characters and strips the combining
// marks, so "naïve café" becomes "naive cafe".
var normalizer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeLyrics prepares lyrics text for lexconvert: decomposed accents
// are stripped, curly quotes straightened, and whitespace runs collapsed
// to single spaces.
func NormalizeLyrics(lyrics string) string {
	normalized, _, err := transform.String(normalizer, lyrics)
	if err != nil {
		// Transformation only fails on malformed UTF-8; fall back to the
		// raw text and let lexconvert complain.
		normalized = lyrics
	}

	replacer := strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
	)
	normalized = replacer.Replace(normalized)

	return strings.Join(strings.Fields(normalized), " ")
}
