package playback

import "testing"

func TestState_Labels(t *testing.T) {
	tests := []struct {
		state State
		label string
		glyph string
	}{
		{StateStopped, "stopped", "■"},
		{StatePlaying, "playing", "▶"},
		{StatePaused, "paused", "⏸"},
		{State(-1), "unknown", "■"},
		{State(7), "unknown", "■"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.label {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.label)
		}
		if got := tt.state.Glyph(); got != tt.glyph {
			t.Errorf("State(%d).Glyph() = %q, want %q", int(tt.state), got, tt.glyph)
		}
	}
}
