package lastfm

// Image is one size variant of a Last.fm image.
type Image struct {
	Size string // small, medium, large, extralarge, mega
	URL  string
}

var sizeRank = map[string]int{
	"small":      1,
	"medium":     2,
	"large":      3,
	"extralarge": 4,
	"mega":       5,
}

// Largest returns the URL of the biggest non-empty image, or "".
func Largest(images []Image) string {
	best, bestRank := "", -1
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		if rank := sizeRank[img.Size]; rank > bestRank {
			best, bestRank = img.URL, rank
		}
	}
	return best
}
