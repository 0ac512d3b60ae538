package score

// Segment groups classified phonemes into syllables: runs of phonemes
// containing exactly one vowel each. No phoneme is duplicated or dropped,
// and every consonant ends up in exactly one syllable.
//
// A syllable completes when a word boundary arrives, when a second vowel
// is about to be read, or when the input ends. When a second vowel forces
// a split, the consonants seen since the previous vowel are divided by a
// clustering heuristic tuned for sung lyrics:
//
//   - no consonants between the vowels: split between the vowels;
//   - a single consonant: it starts the new syllable
//     ("hello" -> [hx eh] [l 'ow]);
//   - two or more: the trailing floor(n/2) consonants start the new
//     syllable, keeping the larger half with the first
//     ("firstly" -> [f 'rr s t] [l ih]).
//
// This is a best-effort phrasing policy, not phonological truth; words
// like "Fulcrum" split differently than a dictionary would.
func Segment(tokens []Phoneme) []Syllable {
	var syllables []Syllable

	// Buffer for the syllable under construction.
	var buffer []Phoneme
	consonantsSinceVowel := 0
	vowelBuffered := false

	flush := func() {
		if len(buffer) > 0 {
			syllables = append(syllables, Syllable(buffer))
		}
		buffer = nil
	}

	for _, token := range tokens {
		switch token.Category {
		case WordBoundary:
			// Word endings are syllable endings.
			flush()
			consonantsSinceVowel = 0
			vowelBuffered = false

		case Consonant:
			buffer = append(buffer, token)
			consonantsSinceVowel++

		case Vowel:
			if vowelBuffered {
				// A second vowel: close the current syllable, moving the
				// new syllable's share of trailing consonants with it.
				keep := newSyllableConsonants(consonantsSinceVowel)
				carried := buffer[len(buffer)-keep:]
				syllables = append(syllables, Syllable(buffer[:len(buffer)-keep]))
				buffer = append([]Phoneme{}, carried...)
			}
			buffer = append(buffer, token)
			vowelBuffered = true
			consonantsSinceVowel = 0
		}
	}

	flush()

	return syllables
}

// newSyllableConsonants reports how many trailing consonants move to the
// syllable started by a second vowel.
func newSyllableConsonants(between int) int {
	switch {
	case between == 0:
		return 0
	case between == 1:
		// A single consonant between vowels tends to start the second
		// syllable when sung.
		return 1
	default:
		return between / 2
	}
}
