package score

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/brianbaillargeon1/MIDI2DECTalk/melody"
)

// Result is the outcome of one synchronization run: the rendered pieces in
// event order, plus every non-fatal condition collected along the way.
type Result struct {
	Pieces   []string
	Warnings []Warning
}

// Score assembles the pieces into the final bracketed score text.
func (r *Result) Score(phonemeOn bool) string {
	return AssembleScore(r.Pieces, phonemeOn)
}

// sustainKind tags what is currently sustaining during the event walk.
type sustainKind int

const (
	sustainNone sustainKind = iota
	sustainRest
	sustainPitch
)

// sustained is the tagged variant for "a pitch is held" vs "silence is
// held" vs "nothing has started yet".
type sustained struct {
	kind  sustainKind
	pitch melody.Pitch
}

// Synchronizer walks a melody's note events and pulls one syllable (or
// emits a rest) per sustain interval. Every note-on starts a new sustain;
// the previous sustain is flushed with the duration elapsed since it began.
// A qualifying note-off flushes the held note and begins a rest.
type Synchronizer struct {
	cfg      Config
	renderer *Renderer
}

// NewSynchronizer creates a synchronizer; it owns a renderer built from the
// same configuration.
func NewSynchronizer(cfg Config) *Synchronizer {
	return &Synchronizer{cfg: cfg, renderer: NewRenderer(cfg)}
}

// Synchronize assigns each syllable a pitch and duration by walking the
// timeline's events in arrival order. Syllables are consumed strictly in
// order and never rewound.
//
// Timing starts at the first note-on: any leading silence before it is
// dropped from the output rather than rendered as a rest. Durations are
// rounded to whole milliseconds and accumulated, so rounding never drifts
// the running clock.
//
// Non-fatal conditions (under-supply, over-supply, dangling sustain) are
// collected into the Result. A duration overflow is fatal: Synchronize
// stops and returns the *DurationOverflowError.
func (s *Synchronizer) Synchronize(timeline *melody.Timeline, syllables []Syllable, tempoBPM float64) (*Result, error) {
	result := &Result{}

	// Cursor state for the walk.
	var (
		firstNoteTick  int64
		firstNoteSeen  bool
		current        sustained
		sustainStartMS float64
		nextSyllable   int
		eventsLeft     int
	)

	// eventMS converts an event tick to milliseconds, left-shifted so the
	// output begins at the first note.
	eventMS := func(tick int64) float64 {
		beats := float64(tick-firstNoteTick) / timeline.TicksPerBeat
		return 60000 * beats / tempoBPM
	}

	// flush renders whatever is sustaining with the duration elapsed up to
	// the given event time, advancing the clock and the syllable cursor.
	// It reports false when the syllable list is exhausted.
	flush := func(nowMS float64) (bool, error) {
		duration := int(math.Round(nowMS - sustainStartMS))

		switch current.kind {
		case sustainRest:
			piece := s.renderer.RenderRest(duration)
			log.Debug("rendered rest", "piece", piece)
			result.Pieces = append(result.Pieces, piece)

		case sustainPitch:
			if nextSyllable >= len(syllables) {
				return false, nil
			}
			piece, err := s.renderer.RenderSyllable(syllables[nextSyllable], current.pitch.Number(), duration)
			if err != nil {
				return false, err
			}
			log.Debug("rendered syllable", "syllable", syllables[nextSyllable], "pitch", current.pitch, "piece", piece)
			result.Pieces = append(result.Pieces, piece)
			nextSyllable++
		}

		sustainStartMS += float64(duration)
		return true, nil
	}

walk:
	for i, event := range timeline.Events {
		switch s.effectiveKind(event) {
		case melody.NoteOn:
			if !firstNoteSeen {
				firstNoteTick = event.Tick
				firstNoteSeen = true
			}
			if current.kind != sustainNone {
				ok, err := flush(eventMS(event.Tick))
				if err != nil {
					return nil, err
				}
				if !ok {
					eventsLeft = len(timeline.Events) - i
					break walk
				}
			}
			current = sustained{kind: sustainPitch, pitch: event.Pitch}

		case melody.NoteOff:
			if current.kind != sustainPitch {
				// A note-off is only meaningful while a pitch sustains.
				continue
			}
			if s.cfg.MatchNoteOffPitch && event.Pitch != current.pitch {
				continue
			}
			ok, err := flush(eventMS(event.Tick))
			if err != nil {
				return nil, err
			}
			if !ok {
				eventsLeft = len(timeline.Events) - i
				break walk
			}
			current = sustained{kind: sustainRest}
		}
	}

	switch {
	case eventsLeft > 0:
		result.Warnings = append(result.Warnings, underSupplyWarning(eventsLeft))
	case current.kind == sustainPitch:
		result.Warnings = append(result.Warnings, danglingSustainWarning())
	}
	if nextSyllable < len(syllables) && eventsLeft == 0 {
		result.Warnings = append(result.Warnings, overSupplyWarning(syllables[nextSyllable:]))
	}

	return result, nil
}

// effectiveKind applies the zero-velocity policy: some MIDI writers encode
// note-offs as note-ons with velocity zero.
func (s *Synchronizer) effectiveKind(event melody.Event) melody.EventKind {
	if s.cfg.ZeroVelocityIsNoteOff && event.Kind == melody.NoteOn && event.Velocity == 0 {
		return melody.NoteOff
	}
	return event.Kind
}
