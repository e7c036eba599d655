// Package builder turns a notation event stream into a Document of songs.
// It is a single-pass state machine: every event is applied to a set of
// registers and the tree under construction.
package builder

import (
	"strings"

	"github.com/jsphweid/chordchart/chord"
	"github.com/jsphweid/chordchart/constants"
	"github.com/jsphweid/chordchart/logging"
	"github.com/jsphweid/chordchart/model"
)

type Builder struct {
	doc *model.Document

	song    model.SongID
	part    model.PartID
	section model.SectionID
	measure model.MeasureID

	// chord opened by an annotation, committed once its duration is known
	open *model.Chord

	duration        int
	notes           int
	leadinDuration  int
	lastChord       model.ChordID
	lastEndingChord model.ChordID
	ending          int
	prevBar         model.BarKind
	barsInSection   int

	// a new part (or section, with explicit labels) starts with the next content
	pendingGroup  bool
	pendingRepeat bool

	songFinished    bool
	hardFinished    bool
	skippingVoice   bool
	autoDetectParts bool
	nextPart        byte
	primaryVoice    string

	divisor              int
	meterNum             int
	meterDenom           int
	measureDuration      int
	beats                int
	timeSignature        string
	pendingTimeSignature string

	lastPitch int
	havePitch bool
}

func New() *Builder {
	b := &Builder{doc: model.NewDocument()}
	b.reset()
	b.song = model.NoID
	return b
}

// Build runs every event through a new Builder.
func Build(events []model.Event) *model.Document {
	b := New()
	for _, ev := range events {
		b.Process(ev)
	}
	return b.Finish()
}

func (b *Builder) reset() {
	*b = Builder{
		doc:             b.doc,
		song:            b.song,
		part:            model.NoID,
		section:         model.NoID,
		measure:         model.NoID,
		lastChord:       model.NoID,
		lastEndingChord: model.NoID,
		autoDetectParts: true,
		nextPart:        'A',
		divisor:         1,
		meterNum:        4,
		meterDenom:      4,
		measureDuration: constants.WholeNote,
		beats:           4,
	}
}

func (b *Builder) Process(ev model.Event) {
	if tune, ok := ev.(model.NewTune); ok {
		b.startSong(tune.Index)
		return
	}
	if b.hardFinished {
		return
	}
	if meta, ok := ev.(model.Metadata); ok {
		b.metadata(meta)
		return
	}
	if b.songFinished || b.skippingVoice {
		return
	}

	switch ev := ev.(type) {
	case model.Note:
		b.annotations(ev.Annotations)
		if ev.SequenceStart {
			b.duration += ev.Duration
			b.notes++
			if len(ev.Pitches) > 0 {
				b.trackPitch(ev.Pitches[0])
			}
		}
	case model.Rest:
		b.annotations(ev.Annotations)
		if ev.SequenceStart {
			b.duration += ev.Duration
		}
	case model.Bar:
		b.annotations(ev.Annotations)
		b.bar(ev)
	case model.Inert:
	default:
		logging.Debug("ignoring event", "event", ev)
	}
}

// Finish closes whatever is still open and returns the document. The
// Builder must not be used afterwards.
func (b *Builder) Finish() *model.Document {
	if b.song != model.NoID && !b.songFinished && !b.hardFinished && b.duration > 0 {
		b.bar(model.Bar{Kind: model.BarThinThick})
	}
	b.finishMeasure()
	return b.doc
}

func (b *Builder) startSong(index int) {
	if b.song != model.NoID {
		b.finishMeasure()
	}
	b.reset()
	b.song = b.doc.NewSong(model.Song{
		Index:           index,
		MeasureDuration: b.measureDuration,
		BeatDuration:    beatDuration(b.meterNum, b.meterDenom),
		BeatsPerMeasure: b.beats,
	})
	logging.Debug("new tune", "index", index)
}

func (b *Builder) metadata(ev model.Metadata) {
	if ev.Kind == model.MetaVoice {
		b.voice(ev.Text)
		return
	}
	b.ensureSong()
	song := b.doc.Song(b.song)

	switch ev.Kind {
	case model.MetaTitle:
		if song.Title == "" {
			song.Title = stripArticle(ev.Text)
		} else if !b.doc.SongEmpty(b.song) {
			// a second tune of a medley without its own header
			b.hardFinished = true
		}
	case model.MetaComposer:
		if song.Composer == "" {
			song.Composer = strings.TrimSpace(stripFieldTag(ev.Text))
		}
	case model.MetaKey:
		if song.Key != 0 {
			return
		}
		k := parseKey(ev.Text, ev.SharpsFlats)
		song.Key, song.Accidental, song.Minor, song.Mode = k.letter, k.accidental, k.minor, k.mode
		song.KeySignature = k.keySignature
		if k.letter == InvalidKey {
			logging.Warn("key signature out of range", "sf", ev.SharpsFlats, "title", song.Title)
		}
	case model.MetaUnitLength:
		if _, denom, ok := parseFraction(stripFieldTag(ev.Text)); ok {
			b.divisor = unitDivisor(denom)
			b.measureDuration = constants.WholeNote * b.meterNum / b.meterDenom / b.divisor
			if !song.MeterChange {
				song.MeasureDuration = b.measureDuration
			}
		}
	case model.MetaMeter:
		b.meter(ev.Text)
	case model.MetaPartLabel:
		if !b.skippingVoice {
			b.partLabel(ev.Text)
		}
	}
}

func (b *Builder) meter(text string) {
	ts := normalizeTimeSignature(text)
	song := b.doc.Song(b.song)
	if song.TimeSignature == "" {
		song.TimeSignature = ts
	} else if ts != b.timeSignature {
		song.MeterChange = true
		b.pendingTimeSignature = ts
	}
	b.timeSignature = ts

	if num, denom, ok := parseFraction(ts); ok {
		b.meterNum, b.meterDenom, b.beats = num, denom, num
		b.measureDuration = constants.WholeNote * num / denom / b.divisor
		if !song.MeterChange {
			song.MeasureDuration = b.measureDuration
			song.BeatDuration = beatDuration(num, denom)
			song.BeatsPerMeasure = num
		}
	}
	if b.pendingTimeSignature != "" && b.measure != model.NoID && b.doc.MeasureEmpty(b.measure) {
		b.applyPendingTimeSignature()
	}
}

func (b *Builder) voice(text string) {
	fields := strings.Fields(stripFieldTag(text))
	if len(fields) == 0 {
		return
	}
	if b.primaryVoice == "" {
		b.primaryVoice = fields[0]
		return
	}
	b.skippingVoice = fields[0] != b.primaryVoice
}

func (b *Builder) partLabel(text string) {
	name := strings.TrimSpace(stripFieldTag(text))
	if name == "" {
		return
	}
	if b.part == model.NoID && isPlayOrder(name) {
		return
	}
	b.autoDetectParts = false
	b.songFinished = false

	if b.part != model.NoID && b.doc.PartMeasureCount(b.part) <= 1 {
		p := b.doc.Part(b.part)
		wasAuto := p.AutoNamed
		p.Name, p.AutoNamed = name, false
		if wasAuto && b.ending == 0 {
			b.prevBar = model.BarNone
			b.barsInSection = 0
			b.dropEmptyMeasure()
		}
		return
	}
	b.startPart(name, false)
}

func (b *Builder) trackPitch(pitch int) {
	b.ensureSong()
	if b.havePitch {
		b.doc.Song(b.song).AddInterval(pitch - b.lastPitch)
	}
	b.lastPitch, b.havePitch = pitch, true
}

func (b *Builder) annotations(annotations []model.Annotation) {
	if len(annotations) == 0 {
		return
	}
	label, diminished, repeat := chord.Name(annotations)
	if label == "" && !repeat {
		return
	}
	b.ensureSong()

	if b.duration != 0 {
		switch {
		case b.open != nil:
			b.open.Duration = b.duration
		case b.lastChord != model.NoID:
			b.open = b.cloneChord(b.lastChord, b.duration)
		case b.ending > 0 && b.lastEndingChord != model.NoID:
			b.open = b.cloneChord(b.lastEndingChord, b.duration)
		}
		b.commit()
		b.pendingGroup = false
		b.duration = 0
	} else if b.ending == 0 && b.prevBar != model.BarRightRepeat && b.pendingGroup {
		b.flushPending()
	}

	if repeat {
		if b.ending == 0 && b.lastChord != model.NoID {
			b.lastEndingChord = b.lastChord
			b.lastChord = model.NoID
		}
		b.openEnding()
	}
	if label != "" {
		b.open = &model.Chord{Label: label, Diminished: diminished}
		b.lastChord = model.NoID
	}
}

func (b *Builder) bar(ev model.Bar) {
	logging.Debug("bar", "kind", ev.Kind, "duration", b.duration, "ending", b.ending)

	// a silent full measure keeps the previous harmony
	if b.open == nil && b.lastChord != model.NoID && b.duration >= b.measureDuration {
		b.open = b.cloneChord(b.lastChord, 0)
	}
	if b.pendingGroup && b.ending == 0 {
		b.flushPending()
	}
	b.pendingGroup = false

	if b.duration != 0 {
		if b.ending > 0 && b.measure == model.NoID {
			// music after a closed ending without a marker opens the next one
			open, duration := b.open, b.duration
			if !b.reuseEmptyEnding() {
				b.openEnding()
			}
			b.open, b.duration = open, duration
		}
		b.closeDuration(ev)
		b.barsInSection++
	}
	if b.measure != model.NoID && b.notes > 0 {
		b.doc.Measure(b.measure).Notes += b.notes
		b.notes = 0
	}

	if ev.Dotted && b.lastChord != model.NoID {
		b.doc.Chord(b.lastChord).BrokenBar = true
	}

	switch ev.Kind {
	case model.BarLeftRepeat:
		inEnding := b.ending > 0
		b.ending = 0
		b.lastEndingChord = model.NoID
		if inEnding || b.prevBar == model.BarSingle || b.prevBar == model.BarDashed {
			b.finishMeasure()
			b.pendingGroup, b.pendingRepeat = true, true
		} else {
			b.ensureSection()
			b.doc.Section(b.section).Repeat = true
		}
	case model.BarRightRepeat:
		b.ensureSection()
		b.doc.Section(b.section).Repeat = true
		switch {
		case b.ending >= 2 && b.measure != model.NoID && !b.doc.MeasureEmpty(b.measure):
			b.ending = 0
			b.lastEndingChord = model.NoID
			b.finishMeasure()
			b.pendingGroup = true
		case b.ending > 0:
			b.finishMeasure()
			b.lastChord = model.NoID
			b.pendingGroup = true
		default:
			b.pendingGroup = true
		}
	case model.BarDoubleRepeat:
		b.ensureSection()
		b.doc.Section(b.section).Repeat = true
		b.ending = 0
		b.lastEndingChord = model.NoID
		b.finishMeasure()
		b.pendingGroup, b.pendingRepeat = true, true
	case model.BarDouble:
		if b.ending == 0 && b.section != model.NoID && b.doc.Section(b.section).Repeat {
			b.appendMeasure()
		} else {
			b.pendingGroup = true
			b.ending = 0
			b.lastEndingChord = model.NoID
		}
	case model.BarThinThick:
		b.finishMeasure()
		b.songFinished = true
		b.ending = 0
	case model.BarCloseBracket:
		if b.ending > 0 {
			b.ending = 0
			b.lastEndingChord = model.NoID
			b.finishMeasure()
			b.pendingGroup = true
		}
	}

	switch ev.Kind {
	case model.BarDouble, model.BarThinThick, model.BarRightRepeat, model.BarOpenBracket, model.BarCloseBracket:
	default:
		if !ev.Dotted && b.measure != model.NoID && !b.doc.MeasureEmpty(b.measure) {
			b.appendMeasure()
		}
	}
	b.prevBar = ev.Kind
}

// closeDuration attributes the duration accumulated since the last chord
// change to a chord of the current measure.
func (b *Builder) closeDuration(ev model.Bar) {
	switch {
	case b.open != nil:
		b.open.Duration = b.duration
		if ev.Kind == model.BarRightRepeat {
			b.open.Duration += b.leadinDuration
			b.leadinDuration = 0
		}
		total := b.open.Duration
		if b.measure != model.NoID {
			total += b.doc.Measure(b.measure).Duration
		}
		b.commit()
		if total < b.measureDuration && b.barsInSection == 0 && b.ending == 0 && !ev.Dotted {
			b.doc.Measure(b.measure).Leadin = true
			b.leadinDuration = total
		}
	case b.lastChord != model.NoID:
		b.open = b.cloneChord(b.lastChord, b.duration)
		b.commit()
	case b.duration < b.measureDuration:
		b.leadinDuration = b.duration
	case b.lastEndingChord != model.NoID:
		b.open = b.cloneChord(b.lastEndingChord, b.duration)
		b.commit()
	}
	b.duration = 0
}

func (b *Builder) cloneChord(id model.ChordID, duration int) *model.Chord {
	c := *b.doc.Chord(id)
	c.Duration = duration
	c.BrokenBar = false
	return &c
}

func (b *Builder) commit() {
	if b.open == nil {
		return
	}
	b.ensureMeasure()
	id := b.doc.NewChord(*b.open)
	m := b.doc.Measure(b.measure)
	m.Chords = append(m.Chords, id)
	m.Duration += b.open.Duration
	m.Notes += b.notes
	b.notes = 0
	b.lastChord = id
	b.open = nil
}

func (b *Builder) openEnding() {
	b.ensureSection()
	b.finishMeasure()
	sec := b.doc.Section(b.section)
	if len(sec.Endings) >= model.MaxEndings {
		logging.Warn("too many endings, reusing the last one", "title", b.doc.Song(b.song).Title)
		b.ending = model.MaxEndings
	} else {
		sec.Endings = append(sec.Endings, nil)
		b.ending = len(sec.Endings)
	}
	b.open = nil
	b.lastChord = model.NoID
	b.appendMeasure()
}

// reuseEmptyEnding moves the cursor back into the current ending slot when
// nothing has been written to it yet, as after a marker on a right repeat.
func (b *Builder) reuseEmptyEnding() bool {
	if b.section == model.NoID {
		return false
	}
	sec := b.doc.Section(b.section)
	if b.ending != len(sec.Endings) || !b.doc.SequenceEmpty(sec.Endings[b.ending-1]) {
		return false
	}
	if seq := sec.Endings[b.ending-1]; len(seq) > 0 {
		b.measure = seq[len(seq)-1]
	}
	b.appendMeasure()
	return true
}

func (b *Builder) groupEmpty() bool {
	if b.autoDetectParts {
		return b.part == model.NoID || b.doc.PartEmpty(b.part)
	}
	return b.section == model.NoID || b.doc.SectionEmpty(b.section)
}

func (b *Builder) flushPending() {
	if !b.groupEmpty() {
		b.startGroup()
	} else if b.pendingRepeat {
		b.ensureSection()
		b.doc.Section(b.section).Repeat = true
	}
	b.pendingGroup, b.pendingRepeat = false, false
}

// startGroup begins the part or section a structural bar asked for,
// carrying the harmony already under way into it.
func (b *Builder) startGroup() {
	open, duration, repeat := b.open, b.duration, b.pendingRepeat
	if b.autoDetectParts {
		b.startPart("", true)
	} else {
		b.allocSection()
	}
	b.doc.Section(b.section).Repeat = repeat
	b.open, b.duration = open, duration
}

func (b *Builder) startPart(name string, auto bool) {
	b.allocPart(name, auto)
	b.open = nil
	b.duration = 0
	b.lastChord = model.NoID
	b.leadinDuration = 0
}

func (b *Builder) allocPart(name string, auto bool) {
	b.ensureSong()
	b.finishMeasure()
	if auto {
		name = string(b.nextPart)
		b.nextPart++
	}
	b.part = b.doc.NewPart(model.Part{Name: name, AutoNamed: auto})
	song := b.doc.Song(b.song)
	song.Parts = append(song.Parts, b.part)
	b.allocSection()
	logging.Debug("new part", "name", name, "auto", auto)
}

func (b *Builder) allocSection() {
	if b.part == model.NoID {
		b.allocPart("", true)
		return
	}
	b.finishMeasure()
	b.section = b.doc.NewSection(model.Section{})
	p := b.doc.Part(b.part)
	p.Sections = append(p.Sections, b.section)
	b.ending = 0
	b.barsInSection = 0
	b.pendingGroup = false
	b.pendingRepeat = false
}

func (b *Builder) ensureSong() {
	if b.song == model.NoID {
		b.startSong(0)
	}
}

func (b *Builder) ensureSection() {
	b.ensureSong()
	if b.part == model.NoID {
		b.allocPart("", true)
	} else if b.section == model.NoID {
		b.allocSection()
	}
}

func (b *Builder) ensureMeasure() {
	b.ensureSection()
	if b.measure == model.NoID {
		b.appendMeasure()
	}
}

// appendMeasure schedules a fresh measure in the current sequence. An empty
// current measure is reused.
func (b *Builder) appendMeasure() {
	b.ensureSection()
	if b.measure != model.NoID {
		if b.doc.MeasureEmpty(b.measure) {
			b.applyPendingTimeSignature()
			return
		}
		b.doc.Measure(b.measure).Finished = true
	}

	b.measure = b.doc.NewMeasure(model.Measure{Beats: b.beats, Ending: b.ending})
	b.applyPendingTimeSignature()
	sec := b.doc.Section(b.section)
	if b.ending > 0 {
		for len(sec.Endings) < b.ending {
			sec.Endings = append(sec.Endings, nil)
		}
		sec.Endings[b.ending-1] = append(sec.Endings[b.ending-1], b.measure)
	} else {
		sec.Measures = append(sec.Measures, b.measure)
	}
}

func (b *Builder) applyPendingTimeSignature() {
	if b.pendingTimeSignature == "" {
		return
	}
	m := b.doc.Measure(b.measure)
	m.TimeSignature = b.pendingTimeSignature
	m.Beats = b.beats
	b.pendingTimeSignature = ""
}

func (b *Builder) finishMeasure() {
	if b.measure == model.NoID {
		return
	}
	if !b.doc.MeasureEmpty(b.measure) {
		b.doc.Measure(b.measure).Finished = true
	}
	b.measure = model.NoID
}

func (b *Builder) dropEmptyMeasure() {
	if b.measure == model.NoID || !b.doc.MeasureEmpty(b.measure) || b.section == model.NoID {
		return
	}
	sec := b.doc.Section(b.section)
	if n := len(sec.Measures); n > 0 && sec.Measures[n-1] == b.measure {
		sec.Measures = sec.Measures[:n-1]
	}
	b.measure = model.NoID
}
