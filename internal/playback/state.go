package playback

// State is the play/pause status of the media element.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

var stateLabels = [...]string{
	StateStopped: "stopped",
	StatePlaying: "playing",
	StatePaused:  "paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateLabels) {
		return "unknown"
	}
	return stateLabels[s]
}

// Glyph is the transport symbol shown next to the current track.
func (s State) Glyph() string {
	switch s {
	case StatePlaying:
		return "▶"
	case StatePaused:
		return "⏸"
	default:
		return "■"
	}
}
