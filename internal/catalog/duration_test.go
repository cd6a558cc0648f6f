package catalog

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"4:00", 240, true},
		{"03:59", 239, true},
		{"0:07", 7, true},
		{"1:02:03", 3723, true},
		{" 2:30 ", 150, true},
		{"--:--", 0, false},
		{"", 0, false},
		{"240", 0, false},
		{"1:60", 0, false},
		{"1:2:3:4", 0, false},
		{"a:bc", 0, false},
		{"-1:30", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDuration(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseDuration(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{240, "4:00"},
		{3723, "1:02:03"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTrack_DurationText(t *testing.T) {
	if got := (Track{}).DurationText(); got != "--:--" {
		t.Errorf("DurationText() = %q, want --:--", got)
	}
	if got := (Track{DurationSeconds: 61, HasDuration: true}).DurationText(); got != "1:01" {
		t.Errorf("DurationText() = %q, want 1:01", got)
	}
}

func TestLookupKey(t *testing.T) {
	tests := []struct {
		title, artist string
		want          string
	}{
		{"Lucid Dreams", "Juice WRLD", "lucid dreams|juice wrld"},
		{"  Lucid   Dreams!! ", "JUICE wrld", "lucid dreams|juice wrld"},
		{"All Girls Are The Same (Remix)", "Juice WRLD", "all girls are the same remix|juice wrld"},
	}

	for _, tt := range tests {
		if got := LookupKey(tt.title, tt.artist); got != tt.want {
			t.Errorf("LookupKey(%q, %q) = %q, want %q", tt.title, tt.artist, got, tt.want)
		}
	}
}
