package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("CHORDCHART_OUT_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

func GetInputDir() string {
	path := os.Getenv("CHORDCHART_INPUT_DIR")
	if path != "" {
		return path
	}
	return "."
}

// WholeNote is the duration of a whole note in the subdivision unit used by
// every Duration field of the event stream and the document.
const WholeNote = 1536

// DiminishedMarker replaces "dim" in chord labels. It is an HTML character
// reference and renders as a single combining glyph.
const DiminishedMarker = "&#x05AF;"

const DefaultPageLines = 60

const DefaultTargetWidth = 96

const DefaultConfigFile = "chordchart.yaml"

// DynamoDB limits BatchWriteItem to 25 requests
const DynamoBatchSize = 25
