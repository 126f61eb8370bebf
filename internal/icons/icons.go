// Package icons renders named glyphs into matrix frames.
package icons

import (
	"fmt"
	"sort"

	ledmatrix "github.com/allbin/go-ledmatrix"
)

// Span lights the given rows of one column.
type Span struct {
	Column int
	Rows   []int
}

// Icon is a set of lit pixels drawn at one brightness.
type Icon struct {
	Name  string
	Spans []Span
}

// Render draws the icon into a frame. Pixels outside the frame are an error.
func (i Icon) Render(brightness byte) (ledmatrix.Frame, error) {
	var frame ledmatrix.Frame
	for _, s := range i.Spans {
		if s.Column < 0 || s.Column >= ledmatrix.Width {
			return frame, fmt.Errorf("icon %s: column %d out of range", i.Name, s.Column)
		}
		for _, row := range s.Rows {
			if row < 0 || row >= ledmatrix.ColumnHeight {
				return frame, fmt.Errorf("icon %s: row %d out of range", i.Name, row)
			}
			frame[s.Column][row] = brightness
		}
	}
	return frame, nil
}

func rows(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for r := from; r <= to; r++ {
		out = append(out, r)
	}
	return out
}

// speakerBody is the cone shared by both speaker glyphs.
var speakerBody = []Span{
	{1, rows(17, 19)},
	{2, rows(16, 20)},
	{3, rows(15, 21)},
}

var SpeakerOn = Icon{
	Name: "speaker-on",
	Spans: append(append([]Span{}, speakerBody...),
		Span{5, []int{16, 18, 20}},
		Span{6, []int{15, 17, 19, 21}},
	),
}

var SpeakerMute = Icon{
	Name: "speaker-mute",
	Spans: append(append([]Span{}, speakerBody...),
		Span{5, []int{17, 19}},
		Span{6, []int{18}},
		Span{7, []int{17, 19}},
	),
}

var registry = map[string]Icon{
	SpeakerOn.Name:   SpeakerOn,
	SpeakerMute.Name: SpeakerMute,
}

// Lookup returns the registered icon with the given name
func Lookup(name string) (Icon, bool) {
	icon, ok := registry[name]
	return icon, ok
}

// Names lists the registered icons in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
