package midi

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrNoTicks = errors.New("midi file does not use metric ticks")

type onset struct {
	tick    int64
	end     int64
	pitches []int
}

type text struct {
	tick int64
	text string
}

type converter struct {
	resolution  int64
	measure     int64
	tick        int64
	nextBar     int64
	events      []model.Event
	annotations []text
}

// Events converts the melody of s to a single tune. The melody is the first
// track with notes; notes starting together form one event, gaps become
// rests and notes crossing a bar line are split at it. Text, lyric and
// marker meta events from any track annotate the next note.
func Events(s *smf.SMF) ([]model.Event, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, ErrNoTicks
	}

	title, num, denom, texts := header(s)
	c := &converter{
		resolution:  int64(ticks.Resolution()),
		annotations: texts,
	}
	c.measure = c.resolution * 4 * int64(num) / int64(denom)
	c.nextBar = c.measure

	c.events = append(c.events, model.NewTune{Index: 1})
	if title != "" {
		c.events = append(c.events, model.Metadata{Kind: model.MetaTitle, Text: title})
	}
	c.events = append(c.events, model.Metadata{Kind: model.MetaMeter, Text: fmt.Sprintf("%d/%d", num, denom)})

	for _, o := range melody(s) {
		if o.tick > c.tick {
			c.advance(o.tick, nil)
		}
		c.advance(o.end, o.pitches)
	}
	c.finish()
	return c.events, nil
}

func header(s *smf.SMF) (title string, num, denom uint8, texts []text) {
	num, denom = 4, 4
	meter := false
	for _, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			var t string
			var n, d uint8
			switch {
			case ev.Message.GetMetaTrackName(&t):
				if title == "" {
					title = t
				}
			case ev.Message.GetMetaMeter(&n, &d):
				if !meter && n > 0 && d > 0 {
					num, denom, meter = n, d, true
				}
			case ev.Message.GetMetaText(&t), ev.Message.GetMetaLyric(&t), ev.Message.GetMetaMarker(&t):
				texts = append(texts, text{tick: tick, text: t})
			}
		}
	}
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].tick < texts[j].tick })
	return title, num, denom, texts
}

// melody collects the onsets of the first track that has notes. Each onset
// lasts until its longest note ends or the next onset starts.
func melody(s *smf.SMF) []onset {
	for _, track := range s.Tracks {
		var tick int64
		var onsets []onset
		started := map[uint8]int{}
		for _, ev := range track {
			tick += int64(ev.Delta)
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
				if n := len(onsets); n > 0 && onsets[n-1].tick == tick {
					onsets[n-1].pitches = append(onsets[n-1].pitches, int(key))
				} else {
					onsets = append(onsets, onset{tick: tick, end: tick, pitches: []int{int(key)}})
				}
				started[key] = len(onsets) - 1
			case ev.Message.GetNoteOff(&ch, &key, &vel), ev.Message.GetNoteOn(&ch, &key, &vel):
				if i, ok := started[key]; ok {
					if tick > onsets[i].end {
						onsets[i].end = tick
					}
					delete(started, key)
				}
			}
		}
		if len(onsets) == 0 {
			continue
		}
		for i := range onsets {
			if i+1 < len(onsets) && onsets[i].end > onsets[i+1].tick {
				onsets[i].end = onsets[i+1].tick
			}
			if onsets[i].end == onsets[i].tick {
				onsets[i].end = onsets[i].tick + 1
			}
		}
		return onsets
	}
	return nil
}

func (c *converter) duration(ticks int64) int {
	return int(ticks * constants.WholeNote / (4 * c.resolution))
}

// pending pulls the annotations due at or before tick.
func (c *converter) pending(tick int64) []model.Annotation {
	var out []model.Annotation
	for len(c.annotations) > 0 && c.annotations[0].tick <= tick {
		out = append(out, model.Annotation{Text: c.annotations[0].text})
		c.annotations = c.annotations[1:]
	}
	return out
}

// advance emits a note (or a rest when pitches is nil) up to until,
// splitting it at every bar line it crosses.
func (c *converter) advance(until int64, pitches []int) {
	first := true
	for c.tick < until {
		next := until
		if c.nextBar < next {
			next = c.nextBar
		}
		d := c.duration(next - c.tick)
		if pitches == nil {
			c.events = append(c.events, model.Rest{Duration: d, SequenceStart: first})
		} else {
			var annotations []model.Annotation
			if first {
				annotations = c.pending(c.tick)
			}
			c.events = append(c.events, model.Note{Duration: d, Pitches: pitches, SequenceStart: first, Annotations: annotations})
		}
		c.tick = next
		if c.tick == c.nextBar {
			c.events = append(c.events, model.Bar{Kind: model.BarSingle})
			c.nextBar += c.measure
		}
		first = false
	}
}

func (c *converter) finish() {
	if n := len(c.events); n > 0 {
		if bar, ok := c.events[n-1].(model.Bar); ok && bar.Kind == model.BarSingle {
			c.events[n-1] = model.Bar{Kind: model.BarThinThick}
			return
		}
	}
	c.events = append(c.events, model.Bar{Kind: model.BarThinThick})
}
