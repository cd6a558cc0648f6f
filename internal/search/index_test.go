package search

import (
	"testing"

	"github.com/llehouerou/wrld/internal/catalog"
)

func testTracks() []catalog.Track {
	return []catalog.Track{
		{ID: "1", Title: "Lucid Dreams", Artist: "Juice WRLD", Album: "Goodbye & Good Riddance", Era: "GBGR"},
		{ID: "2", Title: "Robbery", Artist: "Juice WRLD", Album: "Death Race for Love", Era: "DRFL"},
		{ID: "3", Title: "Wishing Well", Artist: "Juice WRLD", Album: "Legends Never Die", Era: "LND"},
		{ID: "4", Title: "Lucid", Artist: "Juice WRLD", Album: "Singles", Era: "JW 999"},
	}
}

func ids(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Track.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSearch(t *testing.T) {
	x := NewIndex(testTracks())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"exact title", "robbery", []string{"2"}},
		{"case and punctuation", "ROBBERY!", []string{"2"}},
		{"all words must match", "lucid dreams", []string{"1"}},
		{"prefix", "wish", []string{"3"}},
		{"album", "legends", []string{"3"}},
		{"era", "drfl", []string{"2"}},
		{"short word substring", "jw", []string{"4"}},
		{"no match", "conversations", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(x.Search(tt.query, 0))
			if !equal(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearch_RanksExactSubstringFirst(t *testing.T) {
	x := NewIndex(testTracks())

	got := x.Search("lucid", 0)

	if len(got) != 2 {
		t.Fatalf("Search(lucid) returned %d matches, want 2", len(got))
	}
	// both contain "lucid"; ties keep catalog order
	if got[0].Track.ID != "1" || got[1].Track.ID != "4" {
		t.Errorf("Search(lucid) = %v, want [1 4]", ids(got))
	}
	if got[0].Score <= 0 {
		t.Errorf("Score = %v, want > 0", got[0].Score)
	}
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	x := NewIndex(testTracks())

	got := x.Search("   ", 0)

	if !equal(ids(got), []string{"1", "2", "3", "4"}) {
		t.Errorf("Search(\"\") = %v, want all tracks in order", ids(got))
	}
	for _, m := range got {
		if m.Score != 0 {
			t.Errorf("Score = %v, want 0", m.Score)
		}
	}
}

func TestSearch_Limit(t *testing.T) {
	x := NewIndex(testTracks())

	if got := x.Search("juice", 2); len(got) != 2 {
		t.Errorf("len(Search(juice, 2)) = %d, want 2", len(got))
	}
	if got := x.Search("juice", 0); len(got) != 4 {
		t.Errorf("len(Search(juice, 0)) = %d, want 4", len(got))
	}
}

func TestTrigrams(t *testing.T) {
	got := trigrams("ab")
	for _, want := range []string{"  a", " ab", "ab ", "b  "} {
		if _, ok := got[want]; !ok {
			t.Errorf("trigrams(ab) missing %q", want)
		}
	}
	if trigrams("") != nil {
		t.Error("trigrams(\"\") should be nil")
	}
}

func TestCoverage(t *testing.T) {
	q := trigrams("rob")
	if c := coverage(q, trigrams("robbery")); c < 0.5 {
		t.Errorf("coverage(rob, robbery) = %v, want >= 0.5", c)
	}
	if c := coverage(nil, trigrams("robbery")); c != 0 {
		t.Errorf("coverage(nil, ...) = %v, want 0", c)
	}
}
