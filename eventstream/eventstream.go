// Package eventstream reads and writes the line-oriented text form of the
// notation event stream, one event per line with # comments.
package eventstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/jsphweid/chordchart/model"
)

type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}

var inertKinds = map[string]model.InertKind{
	"clef":    model.InertClef,
	"eoln":    model.InertEndOfLine,
	"overlay": model.InertVoiceOverlay,
	"tuplet":  model.InertTuplet,
}

func ParseFile(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening event stream: %w", err)
	}
	defer f.Close()
	return Parse(path, f)
}

func ParseString(path, s string) ([]model.Event, error) {
	return Parse(path, strings.NewReader(s))
}

// Parse reads every event from r. path is only used in error messages.
func Parse(path string, r io.Reader) ([]model.Event, error) {
	var events []model.Event
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ev, err := parseLine(path, text)
		if err != nil {
			return nil, &ParseError{Path: path, Line: n, Message: err.Error()}
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return events, nil
}

func parseLine(path, text string) (model.Event, error) {
	e, err := parser.ParseString(path, text)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, errors.New(perr.Message())
		}
		return nil, err
	}

	switch {
	case e.Tune != nil:
		return model.NewTune{Index: *e.Tune}, nil
	case e.Meta != nil:
		kind, _ := model.ParseMetaKind(e.Meta.Kind)
		return model.Metadata{Kind: kind, Text: e.Meta.Text, SharpsFlats: e.Meta.SharpsFlats}, nil
	case e.Note != nil:
		return model.Note{
			Duration:      e.Note.Duration,
			Pitches:       e.Note.Pitches,
			SequenceStart: e.Note.Seq,
			Annotations:   annotations(e.Note.Annotations),
		}, nil
	case e.Rest != nil:
		return model.Rest{
			Duration:      e.Rest.Duration,
			SequenceStart: e.Rest.Seq,
			Annotations:   annotations(e.Rest.Annotations),
		}, nil
	case e.Bar != nil:
		kind, ok := model.ParseBarKind(e.Bar.Kind)
		if !ok {
			return nil, fmt.Errorf("unknown bar kind %q", e.Bar.Kind)
		}
		return model.Bar{Kind: kind, Dotted: e.Bar.Dotted, Annotations: annotations(e.Bar.Annotations)}, nil
	case e.Inert != nil:
		return model.Inert{Kind: inertKinds[*e.Inert]}, nil
	}
	return nil, errors.New("empty event")
}

func annotations(entries []*annotationEntry) []model.Annotation {
	if len(entries) == 0 {
		return nil
	}
	out := make([]model.Annotation, 0, len(entries))
	for _, a := range entries {
		out = append(out, model.Annotation{Text: a.Text, Repeat: a.Repeat})
	}
	return out
}

// Write prints events in the form Parse reads.
func Write(w io.Writer, events []model.Event) error {
	bw := bufio.NewWriter(w)
	for _, ev := range events {
		bw.WriteString(Format(ev))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Format renders a single event as one line.
func Format(ev model.Event) string {
	var b strings.Builder
	switch ev := ev.(type) {
	case model.NewTune:
		fmt.Fprintf(&b, "tune %d", ev.Index)
	case model.Metadata:
		fmt.Fprintf(&b, "%s %s", ev.Kind, strconv.Quote(ev.Text))
		if ev.SharpsFlats != 0 {
			fmt.Fprintf(&b, " sf=%d", ev.SharpsFlats)
		}
	case model.Note:
		fmt.Fprintf(&b, "note %d [", ev.Duration)
		for i, p := range ev.Pitches {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(p))
		}
		b.WriteByte(']')
		writeTail(&b, ev.SequenceStart, ev.Annotations)
	case model.Rest:
		fmt.Fprintf(&b, "rest %d", ev.Duration)
		writeTail(&b, ev.SequenceStart, ev.Annotations)
	case model.Bar:
		b.WriteString("bar " + ev.Kind.String())
		if ev.Dotted {
			b.WriteString(" dotted")
		}
		writeTail(&b, false, ev.Annotations)
	case model.Inert:
		for name, kind := range inertKinds {
			if kind == ev.Kind {
				b.WriteString(name)
			}
		}
	}
	return b.String()
}

func writeTail(b *strings.Builder, seq bool, annotations []model.Annotation) {
	if seq {
		b.WriteString(" seq")
	}
	for _, a := range annotations {
		if a.Repeat {
			b.WriteString(" repeat")
		}
		b.WriteString(" " + strconv.Quote(a.Text))
	}
}
