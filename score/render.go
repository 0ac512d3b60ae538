package score

import (
	"fmt"
	"strings"
)

// Renderer turns one syllable (or a rest) plus its pitch and duration
// budget into DECTalk text. Consonants get a fixed duration from the
// configuration; the single vowel gets whatever remains of the budget.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a renderer for the given configuration.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// RenderSyllable renders a syllable against a MIDI pitch number and a total
// duration in milliseconds.
//
// Example: syllable [w 'rr l d] at pitch 69 (A440) with 500ms, default
// consonant duration 90ms and the "l" -> "ll" translation renders to
// "w<90>'rr<230,34>ll<90>d<90>".
//
// If the consonants alone exceed the budget, RenderSyllable returns a
// *DurationOverflowError; the run cannot continue past it.
func (r *Renderer) RenderSyllable(syllable Syllable, midiPitch int, durationMS int) (string, error) {
	if _, ok := syllable.Vowel(); !ok {
		return "", fmt.Errorf("%w: %s", ErrNoVowel, syllable)
	}

	consonantTotal := 0
	for _, phoneme := range syllable {
		if phoneme.Category == Consonant {
			consonantTotal += r.consonantDuration(r.translate(phoneme.Symbol))
		}
	}

	vowelDuration := durationMS - consonantTotal
	if vowelDuration < 0 {
		return "", &DurationOverflowError{
			Syllable:    syllable,
			RequiredMS:  consonantTotal,
			AvailableMS: durationMS,
		}
	}

	var b strings.Builder
	for _, phoneme := range syllable {
		symbol := r.translate(phoneme.Symbol)
		switch phoneme.Category {
		case Consonant:
			fmt.Fprintf(&b, "%s<%d>", symbol, r.consonantDuration(symbol))
		case Vowel:
			fmt.Fprintf(&b, "%s<%d,%d>", symbol, vowelDuration, midiPitch-r.cfg.PitchDelta)
		}
	}

	return b.String(), nil
}

// RenderRest renders silence for the given duration.
func (r *Renderer) RenderRest(durationMS int) string {
	return fmt.Sprintf("%s<%d>", r.cfg.RestSymbol, durationMS)
}

// translate maps a segmenter-emitted symbol to the symbol the target
// synthesizer supports. Symbols without a mapping pass through unchanged.
func (r *Renderer) translate(symbol string) string {
	if translated, ok := r.cfg.Translations[symbol]; ok {
		return translated
	}
	return symbol
}

// consonantDuration looks up the duration override for a post-translation
// symbol, falling back to the configured default.
func (r *Renderer) consonantDuration(symbol string) int {
	if duration, ok := r.cfg.ConsonantDurations[symbol]; ok {
		return duration
	}
	return r.cfg.DefaultConsonantDuration
}
