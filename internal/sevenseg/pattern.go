package sevenseg

// Segment identifies one of the seven display segments.
type Segment int

// Segments in canonical order. The integer values double as slot indexes
// everywhere a display unit stores per-segment state.
const (
	SegmentA Segment = iota // top
	SegmentB                // top right
	SegmentC                // bottom right
	SegmentD                // bottom
	SegmentE                // bottom left
	SegmentF                // top left
	SegmentG                // middle
)

// SegmentCount is the number of segments in a display unit.
const SegmentCount = 7

var segmentNames = [SegmentCount]string{"A", "B", "C", "D", "E", "F", "G"}

var segmentLabels = [SegmentCount]string{
	"Top",
	"Top Right",
	"Bottom Right",
	"Bottom",
	"Bottom Left",
	"Top Left",
	"Middle",
}

// String returns the single-letter segment name ("A".."G"), or "?" for
// out-of-range values.
func (s Segment) String() string {
	if s < 0 || s >= SegmentCount {
		return "?"
	}
	return segmentNames[s]
}

// Label returns the human-readable position of the segment ("Top Right"),
// or "Unknown" for out-of-range values.
func (s Segment) Label() string {
	if s < 0 || s >= SegmentCount {
		return "Unknown"
	}
	return segmentLabels[s]
}

// AllSegments returns the seven segments in canonical A..G order.
func AllSegments() []Segment {
	segs := make([]Segment, SegmentCount)
	for i := range segs {
		segs[i] = Segment(i)
	}
	return segs
}

// Digit is a decimal digit 0-9 shown on a display unit.
type Digit int

// Valid reports whether the digit is in the displayable range 0-9.
func (d Digit) Valid() bool {
	return d >= 0 && d <= 9
}

// Pattern records which segments are lit for one digit, indexed by Segment.
type Pattern [SegmentCount]bool

// On reports whether the given segment is lit in this pattern.
func (p Pattern) On(s Segment) bool {
	if s < 0 || s >= SegmentCount {
		return false
	}
	return p[s]
}

// LitCount returns the number of lit segments.
func (p Pattern) LitCount() int {
	n := 0
	for _, on := range p {
		if on {
			n++
		}
	}
	return n
}

// String returns the lit segment letters concatenated in A..G order,
// e.g. "ABCDEF" for zero. The empty string means all segments are off.
func (p Pattern) String() string {
	buf := make([]byte, 0, SegmentCount)
	for i, on := range p {
		if on {
			buf = append(buf, segmentNames[i][0])
		}
	}
	return string(buf)
}

// digitPatterns holds the standard seven-segment encodings, indexed by digit.
// Order within each pattern is A, B, C, D, E, F, G.
var digitPatterns = [10]Pattern{
	0: {true, true, true, true, true, true, false},
	1: {false, true, true, false, false, false, false},
	2: {true, true, false, true, true, false, true},
	3: {true, true, true, true, false, false, true},
	4: {false, true, true, false, false, true, true},
	5: {true, false, true, true, false, true, true},
	6: {true, false, true, true, true, true, true},
	7: {true, true, true, false, false, false, false},
	8: {true, true, true, true, true, true, true},
	9: {true, true, true, true, false, true, true},
}

// PatternOf returns the lit-segment pattern for d. Digits outside 0-9 map to
// the all-off pattern; callers that accept external input should check
// Digit.Valid first.
func PatternOf(d Digit) Pattern {
	if !d.Valid() {
		return Pattern{}
	}
	return digitPatterns[d]
}
