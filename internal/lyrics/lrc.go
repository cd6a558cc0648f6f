// Package lyrics turns lyric text into a time schedule and sources the text
// when the catalog has none.
package lyrics

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Line is a single timestamped lyric line.
type Line struct {
	Time time.Duration
	Text string
}

// LRC holds lyrics parsed from the LRC format.
type LRC struct {
	Lines  []Line
	Title  string
	Artist string
	Album  string
}

var (
	// [00:12.34], [00:12:34] or [00:12]
	timestampRe = regexp.MustCompile(`\[(\d+):(\d{1,2})(?:[.:](\d{1,3}))?\]`)
	// [ar:Artist Name]
	metadataRe = regexp.MustCompile(`^\[([a-z]+):(.+)\]$`)
	// a line that starts with a timestamp
	leadingTimestampRe = regexp.MustCompile(`^\s*\[\d+:\d{1,2}(?:[.:]\d{1,3})?\]`)
)

// IsLRC reports whether text carries LRC timestamps.
func IsLRC(text string) bool {
	for line := range strings.SplitSeq(text, "\n") {
		if leadingTimestampRe.MatchString(line) {
			return true
		}
	}
	return false
}

// ParseLRC parses LRC lyrics. Lines without a timestamp are skipped; a line
// carrying several timestamps yields one Line per timestamp. Lines come back
// sorted by time.
func ParseLRC(r io.Reader) (*LRC, error) {
	lrc := &LRC{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if meta := metadataRe.FindStringSubmatch(line); meta != nil {
			value := strings.TrimSpace(meta[2])
			switch strings.ToLower(meta[1]) {
			case "ar":
				lrc.Artist = value
			case "ti":
				lrc.Title = value
			case "al":
				lrc.Album = value
			}
			continue
		}

		stamps := timestampRe.FindAllStringSubmatchIndex(line, -1)
		if len(stamps) == 0 {
			continue
		}
		text := strings.TrimSpace(line[stamps[len(stamps)-1][1]:])
		for _, m := range stamps {
			ts, ok := parseTimestamp(line[m[0]:m[1]])
			if !ok {
				continue
			}
			lrc.Lines = append(lrc.Lines, Line{Time: ts, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(lrc.Lines, func(i, j int) bool {
		return lrc.Lines[i].Time < lrc.Lines[j].Time
	})
	return lrc, nil
}

// parseTimestamp parses [mm:ss.fff]. The fraction is read as a decimal
// fraction of a second whatever its digit count.
func parseTimestamp(s string) (time.Duration, bool) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil || seconds >= 60 {
		return 0, false
	}

	d := time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if m[3] != "" {
		frac, err := strconv.Atoi(m[3])
		if err != nil {
			return 0, false
		}
		scale := time.Duration(1)
		for range len(m[3]) {
			scale *= 10
		}
		d += time.Duration(frac) * time.Second / scale
	}
	return d, true
}
