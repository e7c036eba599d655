package model

// Event is one item of the notation event stream. The set of event types is
// closed: NewTune, Metadata, Note, Rest, Bar and Inert.
type Event interface {
	isEvent()
}

type MetaKind uint8

const (
	MetaTitle MetaKind = iota
	MetaComposer
	MetaKey
	MetaUnitLength
	MetaMeter
	MetaPartLabel
	MetaVoice
)

var metaKindNames = [...]string{"title", "composer", "key", "unit", "meter", "part", "voice"}

func (k MetaKind) String() string {
	if int(k) < len(metaKindNames) {
		return metaKindNames[k]
	}
	return "unknown"
}

func ParseMetaKind(s string) (MetaKind, bool) {
	for i, name := range metaKindNames {
		if name == s {
			return MetaKind(i), true
		}
	}
	return 0, false
}

type BarKind uint8

const (
	BarSingle BarKind = iota + 1
	BarDouble
	BarThinThick
	BarLeftRepeat
	BarRightRepeat
	BarDoubleRepeat
	BarOpenBracket
	BarCloseBracket
	BarDashed
)

// BarNone is the zero value, used for "no bar seen yet".
const BarNone BarKind = 0

var barKindNames = map[BarKind]string{
	BarNone:         "none",
	BarSingle:       "single",
	BarDouble:       "double",
	BarThinThick:    "thin-thick",
	BarLeftRepeat:   "left-repeat",
	BarRightRepeat:  "right-repeat",
	BarDoubleRepeat: "double-repeat",
	BarOpenBracket:  "open-bracket",
	BarCloseBracket: "close-bracket",
	BarDashed:       "dashed",
}

func (k BarKind) String() string {
	if name, ok := barKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func ParseBarKind(s string) (BarKind, bool) {
	for k, name := range barKindNames {
		if name == s && k != BarNone {
			return k, true
		}
	}
	return BarNone, false
}

type InertKind uint8

const (
	InertClef InertKind = iota
	InertEndOfLine
	InertVoiceOverlay
	InertTuplet
)

// Annotation is a chord-guide annotation attached to a note, rest or bar.
// Repeat marks an ending marker ("1", "2" over a bracket) rather than a chord.
type Annotation struct {
	Text   string
	Repeat bool
}

type NewTune struct {
	Index int
}

type Metadata struct {
	Kind MetaKind
	Text string

	// only meaningful for MetaKey, computed upstream
	SharpsFlats int
}

type Note struct {
	Duration      int
	Pitches       []int
	SequenceStart bool
	Annotations   []Annotation
}

type Rest struct {
	Duration      int
	SequenceStart bool
	Annotations   []Annotation
}

type Bar struct {
	Kind        BarKind
	Dotted      bool
	Annotations []Annotation
}

type Inert struct {
	Kind InertKind
}

func (NewTune) isEvent()  {}
func (Metadata) isEvent() {}
func (Note) isEvent()     {}
func (Rest) isEvent()     {}
func (Bar) isEvent()      {}
func (Inert) isEvent()    {}
