package score

import "fmt"

// Default symbol tables for the DECTalk phoneme set produced by lexconvert.
// lexconvert's "ihr" parses to "ih" plus "r", so it is not listed.
var (
	// DefaultVowels is the vowel symbol table.
	DefaultVowels = []string{
		"aa", "ae", "ah", "ao", "aw", "ax", "ay", "eh", "el", "ey",
		"ih", "ix", "iy", "ow", "oy", "rr", "uh", "uw", "yx", "yu",
	}

	// DefaultConsonants is the consonant symbol table.
	DefaultConsonants = []string{
		"b", "ch", "dx", "dh", "d", "f", "g", "hx", "q", "jh", "k",
		"lx", "l", "m", "nx", "n", "p", "rx", "r", "sh", "s", "tx",
		"th", "t", "v", "w", "zh", "z",
	}
)

const (
	// DefaultWordSeparator splits words in lexconvert output.
	DefaultWordSeparator = ", "

	// DefaultRestSymbol is the DECTalk phoneme representing silence.
	DefaultRestSymbol = "_"

	// DefaultConsonantDurationMS is used for consonants without an
	// explicit duration override.
	DefaultConsonantDurationMS = 90

	// DefaultPitchDelta converts MIDI pitch numbers to DECTalk pitch
	// numbers. A440 is 69 in MIDI and 34 in DECTalk.
	DefaultPitchDelta = 35
)

// Config holds the engine configuration: the symbol tables the tokenizer
// matches against, the renderer's duration and translation tables, and the
// synchronizer's event-handling policies. A Config is threaded into each
// component as an immutable value.
type Config struct {
	// Vowels and Consonants are the recognized symbol tables. Matching
	// is maximal-munch, so table order does not matter; the symbol sets do.
	Vowels     []string
	Consonants []string

	// WordSeparator terminates a word (and therefore a syllable).
	WordSeparator string

	// RestSymbol is rendered for silence between notes.
	RestSymbol string

	// DefaultConsonantDuration is the duration in milliseconds assigned
	// to consonants without an override.
	DefaultConsonantDuration int

	// ConsonantDurations overrides durations per post-translation symbol,
	// for consonants that sound better with something other than the
	// default. E.g. {"g": 85, "wr": 95}.
	ConsonantDurations map[string]int

	// Translations maps segmenter-emitted symbols to the symbols the
	// target synthesizer supports. lexconvert produces "l", but the
	// DECTalk guide lists only "ll".
	Translations map[string]string

	// PitchDelta is subtracted from a MIDI pitch number to produce the
	// DECTalk pitch number.
	PitchDelta int

	// MatchNoteOffPitch requires a note-off's pitch to equal the
	// currently sustained pitch before it ends the sustain. When false,
	// any note-off ends the current sustain.
	MatchNoteOffPitch bool

	// ZeroVelocityIsNoteOff treats a note-on with velocity zero as a
	// note-off, as some MIDI writers encode them.
	ZeroVelocityIsNoteOff bool

	// WritePhonemeOn prepends "[:phoneme on]" to the assembled score.
	// Some DECTalk-capable targets need it.
	WritePhonemeOn bool
}

// DefaultConfig returns a Config targeting the phonetic symbol list of the
// DECTalk guide, fed by lexconvert output.
func DefaultConfig() Config {
	return Config{
		Vowels:                   DefaultVowels,
		Consonants:               DefaultConsonants,
		WordSeparator:            DefaultWordSeparator,
		RestSymbol:               DefaultRestSymbol,
		DefaultConsonantDuration: DefaultConsonantDurationMS,
		ConsonantDurations:       map[string]int{},
		Translations:             map[string]string{"l": "ll"},
		PitchDelta:               DefaultPitchDelta,
		MatchNoteOffPitch:        false,
		ZeroVelocityIsNoteOff:    false,
		WritePhonemeOn:           false,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Vowels) == 0 {
		return fmt.Errorf("vowel table cannot be empty")
	}
	if len(c.Consonants) == 0 {
		return fmt.Errorf("consonant table cannot be empty")
	}
	if err := validateTable("vowel", c.Vowels); err != nil {
		return err
	}
	if err := validateTable("consonant", c.Consonants); err != nil {
		return err
	}
	if c.WordSeparator == "" {
		return fmt.Errorf("word separator cannot be empty")
	}
	if c.RestSymbol == "" {
		return fmt.Errorf("rest symbol cannot be empty")
	}
	if c.DefaultConsonantDuration <= 0 {
		return fmt.Errorf("default consonant duration must be positive, got %d", c.DefaultConsonantDuration)
	}
	for symbol, duration := range c.ConsonantDurations {
		if duration <= 0 {
			return fmt.Errorf("duration override for %q must be positive, got %d", symbol, duration)
		}
	}
	for from, to := range c.Translations {
		if from == "" || to == "" {
			return fmt.Errorf("translation %q -> %q must not map to or from the empty string", from, to)
		}
	}
	return nil
}

func validateTable(name string, symbols []string) error {
	seen := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		if symbol == "" {
			return fmt.Errorf("%s table contains an empty symbol", name)
		}
		if seen[symbol] {
			return fmt.Errorf("%s table contains %q twice", name, symbol)
		}
		seen[symbol] = true
	}
	return nil
}
