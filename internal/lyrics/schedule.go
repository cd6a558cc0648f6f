package lyrics

import (
	"math"
	"strings"
)

// SecondsPerLine is the span given to each line when the media duration is
// not known yet.
const SecondsPerLine = 3.0

// Segment is one lyric line and the half-open interval [Start, End) in
// seconds during which it is active.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

// Contains reports whether pos falls in the segment.
func (s Segment) Contains(pos float64) bool {
	return pos >= s.Start && pos < s.End
}

// Schedule is the ordered lyric timeline of one track.
type Schedule []Segment

// ActiveLine returns the index of the first segment containing pos, or -1.
func (s Schedule) ActiveLine(pos float64) int {
	for i, seg := range s {
		if seg.Contains(pos) {
			return i
		}
	}
	return -1
}

// Span returns the end of the last segment.
func (s Schedule) Span() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].End
}

// Lines returns the schedule's texts.
func (s Schedule) Lines() []string {
	out := make([]string, len(s))
	for i, seg := range s {
		out[i] = seg.Text
	}
	return out
}

// BuildSchedule splits text into lines and spreads them evenly over the
// media duration. Blank lines are dropped. A duration that is not finite or
// not above one second is treated as unknown, and each line then gets
// SecondsPerLine. LRC timestamps are stripped, not honoured.
func BuildSchedule(text string, durationSeconds float64) Schedule {
	if IsLRC(text) {
		if lrc, err := ParseLRC(strings.NewReader(text)); err == nil && len(lrc.Lines) > 0 {
			text = lrc.PlainText()
		}
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return Schedule{}
	}

	total := float64(len(lines)) * SecondsPerLine
	if usableDuration(durationSeconds) {
		total = durationSeconds
	}
	width := total / float64(len(lines))

	schedule := make(Schedule, len(lines))
	for i, line := range lines {
		schedule[i] = Segment{
			Text:  line,
			Start: float64(i) * width,
			End:   float64(i+1) * width,
		}
	}
	// Guard against rounding so the last line reaches the total span.
	schedule[len(schedule)-1].End = total
	return schedule
}

// BuildTimedSchedule follows LRC timestamps when text carries them and
// falls back to BuildSchedule otherwise. Used for lyrics fetched from a
// lyrics service, whose timing matches a real recording.
func BuildTimedSchedule(text string, durationSeconds float64) Schedule {
	if IsLRC(text) {
		if lrc, err := ParseLRC(strings.NewReader(text)); err == nil {
			if s := lrc.Schedule(durationSeconds); len(s) > 0 {
				return s
			}
		}
	}
	return BuildSchedule(text, durationSeconds)
}

// Schedule converts timestamped lines: each line runs until the next one
// starts and the last runs until the media ends (or SecondsPerLine past its
// start when the duration is unknown or shorter). The first line starts at
// zero so the timeline has no leading gap.
func (l *LRC) Schedule(durationSeconds float64) Schedule {
	var kept []Line
	for _, line := range l.Lines {
		if line.Text != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return Schedule{}
	}

	schedule := make(Schedule, len(kept))
	for i, line := range kept {
		schedule[i] = Segment{Text: line.Text, Start: line.Time.Seconds()}
		if i > 0 {
			schedule[i-1].End = schedule[i].Start
		}
	}

	schedule[0].Start = 0

	last := &schedule[len(schedule)-1]
	last.End = last.Start + SecondsPerLine
	if usableDuration(durationSeconds) && durationSeconds > last.Start {
		last.End = durationSeconds
	}
	return schedule
}

// PlainText returns the lyric text without timestamps.
func (l *LRC) PlainText() string {
	lines := make([]string, 0, len(l.Lines))
	for _, line := range l.Lines {
		if line.Text != "" {
			lines = append(lines, line.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func splitLines(text string) []string {
	var lines []string
	for line := range strings.SplitSeq(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func usableDuration(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d > 1
}
