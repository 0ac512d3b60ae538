package score

import (
	"errors"
	"testing"

	"github.com/brianbaillargeon1/MIDI2DECTalk/melody"
)

// msTimeline builds a timeline where one tick equals one millisecond at the
// tempo used by these tests (480 ticks per beat at 125 BPM).
func msTimeline(events ...melody.Event) *melody.Timeline {
	return &melody.Timeline{Events: events, TicksPerBeat: 480}
}

const msTempo = 125.0

func noteOn(tick int64, key uint8) melody.Event {
	return melody.Event{Kind: melody.NoteOn, Tick: tick, Pitch: melody.PitchFromKey(key), Velocity: 80}
}

func noteOff(tick int64, key uint8) melody.Event {
	return melody.Event{Kind: melody.NoteOff, Tick: tick, Pitch: melody.PitchFromKey(key)}
}

func syllables(groups ...Syllable) []Syllable { return groups }

func TestSynchronize(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	// Leading silence before the first note is dropped; the rest between
	// the notes is rendered.
	timeline := msTimeline(
		noteOn(100, 69),
		noteOff(600, 69),
		noteOn(800, 57),
		noteOff(1070, 57),
	)
	input := syllables(
		Syllable(phonemes(c("w"), v("'rr"), c("l"), c("d"))),
		Syllable(phonemes(c("l"), v("'ow"))),
	)

	result, err := sync.Synchronize(timeline, input, msTempo)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}

	expected := []string{
		"w<90>'rr<230,34>ll<90>d<90>",
		"_<200>",
		"ll<90>'ow<180,22>",
	}
	assertPieces(t, result.Pieces, expected)

	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}

	score := result.Score(true)
	expectedScore := "[:phoneme on]\n[w<90>'rr<230,34>ll<90>d<90>_<200>ll<90>'ow<180,22>]"
	if score != expectedScore {
		t.Errorf("Expected score %q, got %q", expectedScore, score)
	}
}

func TestSynchronizeBackToBackNotes(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	// A note-on while a note sustains ends the previous note with no rest.
	timeline := msTimeline(
		noteOn(0, 69),
		noteOn(250, 71),
		noteOff(500, 71),
	)
	input := syllables(
		Syllable(phonemes(v("aa"))),
		Syllable(phonemes(v("iy"))),
	)

	result, err := sync.Synchronize(timeline, input, msTempo)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}
	assertPieces(t, result.Pieces, []string{"aa<250,34>", "iy<250,36>"})
	if len(result.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", result.Warnings)
	}
}

func TestSynchronizeUnderSupply(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	timeline := msTimeline(
		noteOn(0, 69),
		noteOn(500, 69),
		noteOn(1000, 69),
		noteOn(1500, 69),
	)
	input := syllables(
		Syllable(phonemes(v("aa"))),
		Syllable(phonemes(v("iy"))),
	)

	result, err := sync.Synchronize(timeline, input, msTempo)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}

	assertPieces(t, result.Pieces, []string{"aa<500,34>", "iy<500,34>"})
	assertWarningCodes(t, result.Warnings, WarnSyllableUnderSupply)
}

func TestSynchronizeOverSupply(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	timeline := msTimeline(
		noteOn(0, 69),
		noteOff(500, 69),
	)
	input := syllables(
		Syllable(phonemes(v("aa"))),
		Syllable(phonemes(v("iy"))),
		Syllable(phonemes(v("uw"))),
	)

	result, err := sync.Synchronize(timeline, input, msTempo)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}

	assertPieces(t, result.Pieces, []string{"aa<500,34>"})
	assertWarningCodes(t, result.Warnings, WarnSyllableOverSupply)
}

func TestSynchronizeDanglingSustain(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	// The melody ends while the second note still sustains.
	timeline := msTimeline(
		noteOn(0, 69),
		noteOff(500, 69),
		noteOn(600, 69),
	)
	input := syllables(Syllable(phonemes(v("aa"))))

	result, err := sync.Synchronize(timeline, input, msTempo)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}

	assertPieces(t, result.Pieces, []string{"aa<500,34>", "_<100>"})
	assertWarningCodes(t, result.Warnings, WarnDanglingSustain)
}

func TestSynchronizeIgnoresNoteOffDuringRest(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	// The second note-off arrives while silence sustains and must not
	// split the rest.
	timeline := msTimeline(
		noteOn(0, 69),
		noteOff(500, 69),
		noteOff(600, 69),
		noteOn(700, 69),
	)
	input := syllables(Syllable(phonemes(v("aa"))))

	result, err := sync.Synchronize(timeline, input, msTempo)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}
	assertPieces(t, result.Pieces, []string{"aa<500,34>", "_<200>"})
}

func TestSynchronizeNoteOffPitchPolicy(t *testing.T) {
	timeline := msTimeline(
		noteOn(0, 69),
		noteOff(500, 60),
		noteOff(700, 69),
	)
	input := syllables(Syllable(phonemes(v("aa"))))

	t.Run("any note-off ends the sustain", func(t *testing.T) {
		result, err := NewSynchronizer(DefaultConfig()).Synchronize(timeline, input, msTempo)
		if err != nil {
			t.Fatalf("Synchronize returned error: %v", err)
		}
		assertPieces(t, result.Pieces, []string{"aa<500,34>"})
	})

	t.Run("matching note-off required", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MatchNoteOffPitch = true
		result, err := NewSynchronizer(cfg).Synchronize(timeline, input, msTempo)
		if err != nil {
			t.Fatalf("Synchronize returned error: %v", err)
		}
		assertPieces(t, result.Pieces, []string{"aa<700,34>"})
	})
}

func TestSynchronizeZeroVelocityPolicy(t *testing.T) {
	zeroVelocity := melody.Event{Kind: melody.NoteOn, Tick: 500, Pitch: melody.PitchFromKey(69), Velocity: 0}
	timeline := msTimeline(noteOn(0, 69), zeroVelocity)
	input := syllables(Syllable(phonemes(v("aa"))))

	t.Run("plain note-on by default", func(t *testing.T) {
		result, err := NewSynchronizer(DefaultConfig()).Synchronize(timeline, input, msTempo)
		if err != nil {
			t.Fatalf("Synchronize returned error: %v", err)
		}
		assertPieces(t, result.Pieces, []string{"aa<500,34>"})
		assertWarningCodes(t, result.Warnings, WarnDanglingSustain)
	})

	t.Run("treated as note-off when configured", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ZeroVelocityIsNoteOff = true
		result, err := NewSynchronizer(cfg).Synchronize(timeline, input, msTempo)
		if err != nil {
			t.Fatalf("Synchronize returned error: %v", err)
		}
		assertPieces(t, result.Pieces, []string{"aa<500,34>"})
		if len(result.Warnings) != 0 {
			t.Errorf("Expected no warnings, got %v", result.Warnings)
		}
	})
}

func TestSynchronizeRoundingDoesNotDrift(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	// At 120 BPM and 480 ticks per beat, 160 ticks is 166.67ms. Rounding
	// each interval independently would sum to 501ms; the accumulated
	// clock keeps the total at 500ms.
	timeline := &melody.Timeline{
		Events: []melody.Event{
			noteOn(0, 69),
			noteOn(160, 69),
			noteOn(320, 69),
			noteOff(480, 69),
		},
		TicksPerBeat: 480,
	}
	input := syllables(
		Syllable(phonemes(v("aa"))),
		Syllable(phonemes(v("iy"))),
		Syllable(phonemes(v("uw"))),
	)

	result, err := sync.Synchronize(timeline, input, 120)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}
	assertPieces(t, result.Pieces, []string{"aa<167,34>", "iy<166,34>", "uw<167,34>"})
}

func TestSynchronizeOverflowIsFatal(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	timeline := msTimeline(
		noteOn(0, 69),
		noteOff(200, 69),
	)
	input := syllables(Syllable(phonemes(c("w"), v("'rr"), c("l"), c("d"))))

	result, err := sync.Synchronize(timeline, input, msTempo)
	if err == nil {
		t.Fatal("Expected an overflow error, got nil")
	}
	if !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("Expected error to match ErrDurationOverflow, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected no result on a fatal error, got %v", result)
	}
}

func TestSynchronizeEmptyTimeline(t *testing.T) {
	sync := NewSynchronizer(DefaultConfig())

	result, err := sync.Synchronize(msTimeline(), nil, msTempo)
	if err != nil {
		t.Fatalf("Synchronize returned error: %v", err)
	}
	if len(result.Pieces) != 0 {
		t.Errorf("Expected no pieces, got %v", result.Pieces)
	}
	if got := result.Score(false); got != "[]" {
		t.Errorf("Expected empty score %q, got %q", "[]", got)
	}
}

func assertPieces(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d pieces, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Piece %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func assertWarningCodes(t *testing.T, got []Warning, expected ...WarningCode) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("Expected %d warning(s), got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i].Code != expected[i] {
			t.Errorf("Warning %d: expected %v, got %v", i, expected[i], got[i].Code)
		}
	}
}
