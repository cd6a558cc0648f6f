package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/wrld/internal/artwork"
	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/engine"
	"github.com/llehouerou/wrld/internal/views"
)

type row []string

// printRows writes rows as columns of the given display widths. Cells are
// truncated or padded by display width so wide titles stay aligned.
func printRows(w io.Writer, widths []int, rows []row) {
	for _, r := range rows {
		var b strings.Builder
		for i, cell := range r {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(r)-1 || i >= len(widths) {
				b.WriteString(cell)
				continue
			}
			b.WriteString(runewidth.FillRight(runewidth.Truncate(cell, widths[i], "…"), widths[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

func printList(w io.Writer, title string, values []string) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(values))
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
}

func filterSummary(f views.Filters) string {
	if f.IsZero() {
		return ""
	}
	var parts []string
	for _, p := range [][2]string{
		{"era", f.Era}, {"category", f.Category}, {"album", f.Album}, {"mood", f.Mood},
	} {
		if p[1] != "" {
			parts = append(parts, p[0]+"="+p[1])
		}
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func (a *App) printView() {
	snap := a.engine.Snapshot()
	fmt.Fprintf(a.out, "%s: %d tracks%s\n", snap.Section.Name(), len(snap.Tracks), filterSummary(snap.Filters))
	if snap.Status != "" {
		fmt.Fprintln(a.out, snap.Status)
		return
	}

	rows := make([]row, 0, len(snap.Tracks))
	for i, t := range snap.Tracks {
		marker := " "
		if i == snap.Index {
			marker = ">"
		}
		like := "♡"
		if a.engine.IsLiked(t.ID) {
			like = "♥"
		}
		rows = append(rows, row{
			marker + fmt.Sprintf("%02d", i+1),
			t.Title,
			t.Artist,
			t.Era,
			t.DurationText(),
			like,
		})
	}
	printRows(a.out, []int{4, 36, 24, 20, 7}, rows)
}

func (a *App) printTrack(snap engine.Snapshot) {
	if !snap.HasCurrent {
		fmt.Fprintln(a.out, snap.Title)
		return
	}
	t := snap.Current
	fmt.Fprintln(a.out, t.Title)
	fmt.Fprintf(a.out, "%s · %s · %s\n", t.Artist, t.Era, t.Album)

	duration := "--:--"
	if snap.HasDuration {
		duration = catalog.FormatDuration(snap.Duration)
	}
	liked := "no"
	if snap.Liked {
		liked = "yes"
	}
	cover := snap.Cover
	if artwork.IsPlaceholder(cover) {
		cover = "(generated placeholder)"
	}
	stream := a.engine.StreamURL(t)
	if stream == "" {
		stream = "(not playable)"
	}

	printRows(a.out, []int{10}, []row{
		{"Duration", duration},
		{"State", snap.State.Glyph() + " " + snap.State.String()},
		{"Liked", liked},
		{"Stream", stream},
		{"Cover", cover},
	})

	schedule := a.engine.Schedule()
	if len(schedule) == 0 {
		fmt.Fprintln(a.out, "No lyrics available for this song yet.")
		return
	}
	fmt.Fprintln(a.out, "Lyrics")
	for _, seg := range schedule {
		fmt.Fprintf(a.out, "  %6s  %s\n", catalog.FormatDuration(seg.Start), seg.Text)
	}
}
