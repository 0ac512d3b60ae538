// Package melody parses Standard MIDI Files into the ordered note event
// sequence the score engine synchronizes against.
package melody

import "fmt"

// EventKind identifies the note events the engine cares about. Everything
// else in the MIDI track is dropped during extraction.
type EventKind int

const (
	// NoteOn starts (or retriggers) a note.
	NoteOn EventKind = iota
	// NoteOff ends a note.
	NoteOff
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	default:
		return "unknown"
	}
}

// pitchClasses are the note names within an octave, by pitch class.
var pitchClasses = []string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

// Pitch is an octave plus a pitch class. A440 is octave 5, class 9.
type Pitch struct {
	Octave int
	Class  int
}

// PitchFromKey converts a MIDI key number to a Pitch. Key 69 (A440)
// becomes octave 5, class 9.
func PitchFromKey(key uint8) Pitch {
	return Pitch{Octave: int(key) / 12, Class: int(key) % 12}
}

// Number returns the MIDI pitch number: octave*12 + class.
func (p Pitch) Number() int {
	return p.Octave*12 + p.Class
}

// String renders the pitch as a note name, e.g. "a5" for A440.
func (p Pitch) String() string {
	if p.Class < 0 || p.Class >= len(pitchClasses) {
		return fmt.Sprintf("pitch(%d,%d)", p.Octave, p.Class)
	}
	return fmt.Sprintf("%s%d", pitchClasses[p.Class], p.Octave)
}

// Event is a timed note event. Events are ordered by tick ascending;
// events at equal ticks keep their order in the source track.
type Event struct {
	Kind     EventKind
	Tick     int64
	Pitch    Pitch
	Velocity uint8
}

// Timeline is one parsed MIDI track: its note events in order plus the
// file's tick resolution.
type Timeline struct {
	Events       []Event
	TicksPerBeat float64

	// TrackName is the selected track's name, if it has one.
	TrackName string
	// TrackCount is the number of tracks in the source file.
	TrackCount int
}
