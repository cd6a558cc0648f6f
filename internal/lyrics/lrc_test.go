package lyrics

import (
	"strings"
	"testing"
	"time"
)

func TestParseLRC_Basic(t *testing.T) {
	lrc := `[ar:Juice WRLD]
[ti:Lucid Dreams]
[al:Goodbye & Good Riddance]
[00:12.34]First line
[00:15.67]Second line
[00:20.00]Third line`

	got, err := ParseLRC(strings.NewReader(lrc))
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}

	if got.Artist != "Juice WRLD" {
		t.Errorf("Artist = %q, want %q", got.Artist, "Juice WRLD")
	}
	if got.Title != "Lucid Dreams" {
		t.Errorf("Title = %q, want %q", got.Title, "Lucid Dreams")
	}
	if got.Album != "Goodbye & Good Riddance" {
		t.Errorf("Album = %q, want %q", got.Album, "Goodbye & Good Riddance")
	}

	if len(got.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(got.Lines))
	}

	expected := []struct {
		time time.Duration
		text string
	}{
		{12*time.Second + 340*time.Millisecond, "First line"},
		{15*time.Second + 670*time.Millisecond, "Second line"},
		{20 * time.Second, "Third line"},
	}
	for i, exp := range expected {
		if got.Lines[i].Time != exp.time {
			t.Errorf("Lines[%d].Time = %v, want %v", i, got.Lines[i].Time, exp.time)
		}
		if got.Lines[i].Text != exp.text {
			t.Errorf("Lines[%d].Text = %q, want %q", i, got.Lines[i].Text, exp.text)
		}
	}
}

func TestParseLRC_MultipleTimestamps(t *testing.T) {
	lrc := `[00:30.00][01:30.00][02:30.00]Chorus line`

	got, err := ParseLRC(strings.NewReader(lrc))
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}
	if len(got.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(got.Lines))
	}
	want := []time.Duration{30 * time.Second, 90 * time.Second, 150 * time.Second}
	for i, line := range got.Lines {
		if line.Text != "Chorus line" {
			t.Errorf("Lines[%d].Text = %q, want %q", i, line.Text, "Chorus line")
		}
		if line.Time != want[i] {
			t.Errorf("Lines[%d].Time = %v, want %v", i, line.Time, want[i])
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Duration
		wantOK bool
	}{
		{"[00:10]", 10 * time.Second, true},
		{"[00:20.5]", 20*time.Second + 500*time.Millisecond, true},
		{"[00:30.50]", 30*time.Second + 500*time.Millisecond, true},
		{"[00:40.500]", 40*time.Second + 500*time.Millisecond, true},
		{"[01:00:25]", time.Minute + 250*time.Millisecond, true},
		{"[00:75]", 0, false},
		{"no stamp", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseTimestamp(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseTimestamp(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseLRC_SkipsUnstampedAndEmptyLines(t *testing.T) {
	lrc := "[00:10.00]First\r\n\r\nplain words\n[00:20.00]Second\n"

	got, err := ParseLRC(strings.NewReader(lrc))
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(got.Lines))
	}
	if got.PlainText() != "First\nSecond" {
		t.Errorf("PlainText() = %q", got.PlainText())
	}
}

func TestIsLRC(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"[00:01.00]hello", true},
		{"intro\n  [01:02]verse", true},
		{"a\nb\nc", false},
		{"[Chorus]\nline", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsLRC(tt.text); got != tt.want {
			t.Errorf("IsLRC(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
