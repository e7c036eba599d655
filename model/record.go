package model

// Record is the flattened, serializable form of a song used by the JSON
// output and the DynamoDB table.
type Record struct {
	ID               string       `json:"id" dynamodbav:"id"`
	Index            int          `json:"index" dynamodbav:"index"`
	Title            string       `json:"title" dynamodbav:"title"`
	Composer         string       `json:"composer,omitempty" dynamodbav:"composer,omitempty"`
	Key              string       `json:"key" dynamodbav:"key"`
	KeySignature     string       `json:"keySignature" dynamodbav:"keySignature"`
	Minor            bool         `json:"minor" dynamodbav:"minor"`
	Mode             string       `json:"mode,omitempty" dynamodbav:"mode,omitempty"`
	TimeSignature    string       `json:"timeSignature" dynamodbav:"timeSignature"`
	MeterChange      bool         `json:"meterChange" dynamodbav:"meterChange"`
	MeasureDuration  int          `json:"measureDuration" dynamodbav:"measureDuration"`
	BeatDuration     int          `json:"beatDuration" dynamodbav:"beatDuration"`
	BeatsPerMeasure  int          `json:"beatsPerMeasure" dynamodbav:"beatsPerMeasure"`
	LongestIntervals []int        `json:"longestIntervals" dynamodbav:"longestIntervals"`
	Parts            []PartRecord `json:"parts" dynamodbav:"parts"`
}

type PartRecord struct {
	Name      string          `json:"name" dynamodbav:"name"`
	AutoNamed bool            `json:"autoNamed" dynamodbav:"autoNamed"`
	Sections  []SectionRecord `json:"sections" dynamodbav:"sections"`
}

type SectionRecord struct {
	Repeat   bool              `json:"repeat" dynamodbav:"repeat"`
	Measures []MeasureRecord   `json:"measures" dynamodbav:"measures"`
	Endings  [][]MeasureRecord `json:"endings,omitempty" dynamodbav:"endings,omitempty"`
}

type MeasureRecord struct {
	Duration      int           `json:"duration" dynamodbav:"duration"`
	Beats         int           `json:"beats" dynamodbav:"beats"`
	Notes         int           `json:"notes" dynamodbav:"notes"`
	Leadin        bool          `json:"leadin,omitempty" dynamodbav:"leadin,omitempty"`
	TimeSignature string        `json:"timeSignature,omitempty" dynamodbav:"timeSignature,omitempty"`
	Chords        []ChordRecord `json:"chords" dynamodbav:"chords"`
}

type ChordRecord struct {
	Label      string `json:"label" dynamodbav:"label"`
	Duration   int    `json:"duration" dynamodbav:"duration"`
	Diminished bool   `json:"diminished,omitempty" dynamodbav:"diminished,omitempty"`
	BrokenBar  bool   `json:"brokenBar,omitempty" dynamodbav:"brokenBar,omitempty"`
}
