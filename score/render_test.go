package score

import (
	"errors"
	"testing"
)

func TestRenderSyllable(t *testing.T) {
	renderer := NewRenderer(DefaultConfig())

	tests := []struct {
		name       string
		syllable   Syllable
		midiPitch  int
		durationMS int
		expected   string
	}{
		{
			name:       "world at A440",
			syllable:   Syllable(phonemes(c("w"), v("'rr"), c("l"), c("d"))),
			midiPitch:  69,
			durationMS: 500,
			expected:   "w<90>'rr<230,34>ll<90>d<90>",
		},
		{
			name:       "bare vowel gets the whole budget",
			syllable:   Syllable(phonemes(v("iy"))),
			midiPitch:  57,
			durationMS: 300,
			expected:   "iy<300,22>",
		},
		{
			name:       "consonants may consume the whole budget",
			syllable:   Syllable(phonemes(c("hx"), v("eh"))),
			midiPitch:  60,
			durationMS: 90,
			expected:   "hx<90>eh<0,25>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderSyllable(tt.syllable, tt.midiPitch, tt.durationMS)
			if err != nil {
				t.Fatalf("RenderSyllable returned error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderSyllableOverflow(t *testing.T) {
	renderer := NewRenderer(DefaultConfig())

	// w + ll + d need 270ms of consonants; 200ms cannot hold them.
	syllable := Syllable(phonemes(c("w"), v("'rr"), c("l"), c("d")))
	_, err := renderer.RenderSyllable(syllable, 69, 200)
	if err == nil {
		t.Fatal("Expected an overflow error, got nil")
	}
	if !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("Expected error to match ErrDurationOverflow, got %v", err)
	}

	var overflow *DurationOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("Expected a *DurationOverflowError, got %T", err)
	}
	if overflow.RequiredMS != 270 {
		t.Errorf("Expected RequiredMS=270, got %d", overflow.RequiredMS)
	}
	if overflow.AvailableMS != 200 {
		t.Errorf("Expected AvailableMS=200, got %d", overflow.AvailableMS)
	}
}

func TestRenderSyllableWithoutVowel(t *testing.T) {
	renderer := NewRenderer(DefaultConfig())

	_, err := renderer.RenderSyllable(Syllable(phonemes(c("s"), c("t"))), 69, 500)
	if !errors.Is(err, ErrNoVowel) {
		t.Errorf("Expected ErrNoVowel, got %v", err)
	}
}

func TestRenderRest(t *testing.T) {
	renderer := NewRenderer(DefaultConfig())

	if got := renderer.RenderRest(125); got != "_<125>" {
		t.Errorf("Expected %q, got %q", "_<125>", got)
	}
}

func TestDurationLookupUsesTranslatedSymbol(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsonantDurations = map[string]int{
		"ll": 120, // post-translation symbol
		"l":  50,  // must not be consulted
	}
	renderer := NewRenderer(cfg)

	got, err := renderer.RenderSyllable(Syllable(phonemes(c("l"), v("ow"))), 69, 500)
	if err != nil {
		t.Fatalf("RenderSyllable returned error: %v", err)
	}
	expected := "ll<120>ow<380,34>"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestRenderConservesDuration(t *testing.T) {
	renderer := NewRenderer(DefaultConfig())

	// w<90> + 'rr<230> + ll<90> + d<90> = 500
	got, err := renderer.RenderSyllable(Syllable(phonemes(c("w"), v("'rr"), c("l"), c("d"))), 69, 500)
	if err != nil {
		t.Fatalf("RenderSyllable returned error: %v", err)
	}
	if got != "w<90>'rr<230,34>ll<90>d<90>" {
		t.Errorf("Rendered durations do not sum to the budget: %q", got)
	}
}
