package views

import (
	"fmt"
	"strings"

	"github.com/llehouerou/wrld/internal/catalog"
)

// Section is the navigation section a view is built for. The set of
// sections is closed: only the types in this package implement it.
type Section interface {
	Name() string
	build(in Input) []catalog.Track
}

type (
	// Songs is the filtered catalog.
	Songs struct{}
	// Albums is one representative per album, or per era for singles.
	Albums struct{}
	// Playlists shows the liked-tracks snapshot.
	Playlists struct{}
	// Radio is the externally supplied random batch.
	Radio struct{}
	// Likes is every liked track.
	Likes struct{}
	// Swipe is the fixed deck.
	Swipe struct{}
)

func (Songs) Name() string     { return "songs" }
func (Albums) Name() string    { return "albums" }
func (Playlists) Name() string { return "playlists" }
func (Radio) Name() string     { return "radio" }
func (Likes) Name() string     { return "likes" }
func (Swipe) Name() string     { return "swipe" }

// Sections lists every section in menu order.
func Sections() []Section {
	return []Section{Songs{}, Albums{}, Playlists{}, Radio{}, Likes{}, Swipe{}}
}

// ParseSection maps a section name to its Section. Matching ignores case
// and surrounding space; an empty name is Songs.
func ParseSection(name string) (Section, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Songs{}, nil
	}
	for _, s := range Sections() {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown section %q", name)
}
