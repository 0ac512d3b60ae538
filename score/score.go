// Package score turns a flat phoneme string and a timed melody into a
// DECTalk-annotated phoneme score. Parsing splits the phoneme string into
// syllables (groups of phonemes containing exactly one vowel), and the
// synchronizer walks note events to give every syllable a pitch and a
// duration budget.
package score

import "strings"

// Category classifies a phoneme symbol.
type Category int

const (
	// Consonant is a consonant phoneme, e.g. "hx".
	Consonant Category = iota
	// Vowel is a vowel phoneme, e.g. "eh". Vowel symbols may carry a
	// leading stress apostrophe.
	Vowel
	// WordBoundary marks the separator between words.
	WordBoundary
)

// String returns a short name for the category.
func (c Category) String() string {
	switch c {
	case Consonant:
		return "consonant"
	case Vowel:
		return "vowel"
	case WordBoundary:
		return "word boundary"
	default:
		return "unknown"
	}
}

// Phoneme is a single classified phoneme symbol. The symbol keeps its
// leading stress apostrophe, if any. Phonemes are immutable once produced.
type Phoneme struct {
	Symbol   string
	Category Category
}

// String renders the phoneme for diagnostics, e.g. "'ow(vowel)".
func (p Phoneme) String() string {
	return p.Symbol + "(" + p.Category.String() + ")"
}

// Syllable is an ordered run of phonemes containing exactly one vowel.
// Syllables are built by Segment and never mutated afterwards.
type Syllable []Phoneme

// String joins the syllable's symbols, e.g. "[w 'rr l d]".
func (s Syllable) String() string {
	symbols := make([]string, len(s))
	for i, p := range s {
		symbols[i] = p.Symbol
	}
	return "[" + strings.Join(symbols, " ") + "]"
}

// Vowel returns the syllable's single vowel phoneme.
func (s Syllable) Vowel() (Phoneme, bool) {
	for _, p := range s {
		if p.Category == Vowel {
			return p, true
		}
	}
	return Phoneme{}, false
}

// AssembleScore joins rendered pieces into the final score text: an
// optional "[:phoneme on]" control marker, then the pieces bounded by
// brackets. The bracketed triplet syntax is the DECTalk input contract.
func AssembleScore(pieces []string, phonemeOn bool) string {
	var b strings.Builder
	if phonemeOn {
		b.WriteString("[:phoneme on]\n")
	}
	b.WriteString("[")
	for _, piece := range pieces {
		b.WriteString(piece)
	}
	b.WriteString("]")
	return b.String()
}
