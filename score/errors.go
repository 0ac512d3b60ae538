package score

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors for the score engine.
var (
	// ErrTokenize marks a recoverable tokenization failure; the tokens
	// produced before the failure are still usable.
	ErrTokenize = errors.New("could not match a phoneme category")

	// ErrDurationOverflow marks a fatal rendering failure: a syllable's
	// consonants alone exceed the available note duration.
	ErrDurationOverflow = errors.New("phonemes do not fit the note duration")

	// ErrNoVowel is returned when a syllable handed to the renderer has
	// no vowel. Segment never produces such a syllable.
	ErrNoVowel = errors.New("syllable contains no vowel")
)

// ParseError reports the position where tokenization stopped. It is
// recoverable: the caller keeps the tokens produced up to Offset.
type ParseError struct {
	// Offset is the byte position in the input where no category matched.
	Offset int
	// Remainder is the unconsumed input starting at Offset.
	Remainder string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	remainder := e.Remainder
	if len(remainder) > 24 {
		remainder = remainder[:24] + "..."
	}
	return fmt.Sprintf("could not match a phoneme category at offset %d: %q", e.Offset, remainder)
}

// Unwrap lets errors.Is match ErrTokenize.
func (e *ParseError) Unwrap() error { return ErrTokenize }

// DurationOverflowError reports a syllable whose consonants alone exceed
// the note's duration budget. It is fatal to the run: reduce the default
// consonant duration or use longer notes.
type DurationOverflowError struct {
	Syllable    Syllable
	RequiredMS  int
	AvailableMS int
}

// Error implements the error interface.
func (e *DurationOverflowError) Error() string {
	return fmt.Sprintf("syllable %s needs %dms of consonants but the note only has %dms",
		e.Syllable, e.RequiredMS, e.AvailableMS)
}

// Unwrap lets errors.Is match ErrDurationOverflow.
func (e *DurationOverflowError) Unwrap() error { return ErrDurationOverflow }

// WarningCode identifies a non-fatal synchronization condition.
type WarningCode int

const (
	// WarnSyllableUnderSupply: more notes than syllables; the walk stops
	// at exhaustion and the rest of the melody is unscored.
	WarnSyllableUnderSupply WarningCode = iota
	// WarnSyllableOverSupply: more syllables than notes; trailing
	// syllables are dropped from the output.
	WarnSyllableOverSupply
	// WarnDanglingSustain: the event walk ended while a pitch was still
	// sustaining; the trailing sustain is never flushed.
	WarnDanglingSustain
)

// String returns a short name for the warning code.
func (c WarningCode) String() string {
	switch c {
	case WarnSyllableUnderSupply:
		return "syllable under-supply"
	case WarnSyllableOverSupply:
		return "syllable over-supply"
	case WarnDanglingSustain:
		return "dangling sustain"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal condition collected during synchronization and
// reported alongside the produced output.
type Warning struct {
	Code    WarningCode
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	return w.Code.String() + ": " + w.Message
}

func underSupplyWarning(notesLeft int) Warning {
	return Warning{
		Code:    WarnSyllableUnderSupply,
		Message: fmt.Sprintf("there are more notes than syllables; output truncated with %d note event(s) unscored", notesLeft),
	}
}

func overSupplyWarning(remaining []Syllable) Warning {
	symbols := make([]string, len(remaining))
	for i, s := range remaining {
		symbols[i] = s.String()
	}
	return Warning{
		Code:    WarnSyllableOverSupply,
		Message: fmt.Sprintf("there are more syllables than notes; %d syllable(s) dropped: %s", len(remaining), strings.Join(symbols, " ")),
	}
}

func danglingSustainWarning() Warning {
	return Warning{
		Code:    WarnDanglingSustain,
		Message: "the melody ended while a note was still sustaining; the trailing note is not scored",
	}
}
