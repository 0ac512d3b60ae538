package melody

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TrackSelector picks the track whose events drive the score. When Name is
// set it is fuzzy-matched against the file's track names; otherwise Index
// is used directly.
type TrackSelector struct {
	Index int
	Name  string
}

// Load reads a Standard MIDI File and extracts the selected track's note
// events.
func Load(path string, selector TrackSelector) (*Timeline, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read MIDI file: %w", err)
	}
	return FromSMF(s, selector)
}

// FromSMF extracts a Timeline from a parsed Standard MIDI File.
func FromSMF(s *smf.SMF, selector TrackSelector) (*Timeline, error) {
	metric, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v: only metric ticks are supported", s.TimeFormat)
	}

	index, err := SelectTrack(s.Tracks, selector)
	if err != nil {
		return nil, err
	}

	track := s.Tracks[index]
	timeline := &Timeline{
		Events:       ExtractEvents(track),
		TicksPerBeat: float64(metric.Ticks4th()),
		TrackName:    TrackName(track),
		TrackCount:   len(s.Tracks),
	}

	log.Debug("parsed MIDI track",
		"track", index,
		"name", timeline.TrackName,
		"events", len(timeline.Events),
		"ticksPerBeat", timeline.TicksPerBeat)

	return timeline, nil
}

// SelectTrack resolves a selector to a track index. A named selection
// fuzzy-matches against the tracks' names, so "voc" finds "Lead Vocals".
func SelectTrack(tracks []smf.Track, selector TrackSelector) (int, error) {
	if len(tracks) == 0 {
		return 0, fmt.Errorf("the MIDI file contains no tracks")
	}

	if selector.Name != "" {
		names := make([]string, len(tracks))
		for i, track := range tracks {
			names[i] = TrackName(track)
		}
		matches := fuzzy.Find(selector.Name, names)
		if len(matches) == 0 {
			return 0, fmt.Errorf("no track name matches %q (tracks: %v)", selector.Name, names)
		}
		return matches[0].Index, nil
	}

	if selector.Index < 0 || selector.Index >= len(tracks) {
		return 0, fmt.Errorf("track %d does not exist: the file has %d track(s)", selector.Index, len(tracks))
	}
	if selector.Index == 0 && len(tracks) > 1 {
		log.Info("multiple tracks detected; only the first track will be used", "tracks", len(tracks))
	}
	return selector.Index, nil
}

// ExtractEvents walks a track and returns its note events with absolute
// ticks, preserving source order. Non-note messages are skipped.
func ExtractEvents(track smf.Track) []Event {
	var events []Event

	var tick int64
	for _, ev := range track {
		tick += int64(ev.Delta)

		var channel, key, velocity uint8
		switch {
		case ev.Message.GetNoteOn(&channel, &key, &velocity):
			events = append(events, Event{
				Kind:     NoteOn,
				Tick:     tick,
				Pitch:    PitchFromKey(key),
				Velocity: velocity,
			})
		case ev.Message.GetNoteOff(&channel, &key, &velocity):
			events = append(events, Event{
				Kind:     NoteOff,
				Tick:     tick,
				Pitch:    PitchFromKey(key),
				Velocity: velocity,
			})
		}
	}

	return events
}

// TrackName returns the track's name meta event text, if present.
func TrackName(track smf.Track) string {
	var name string
	for _, ev := range track {
		if ev.Message.GetMetaTrackName(&name) {
			return name
		}
	}
	return ""
}
