package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/wrld/internal/errmsg"
	"github.com/llehouerou/wrld/internal/views"
)

func (a *App) songsCommand() *cobra.Command {
	var (
		filters views.Filters
		section string
		reset   bool
	)

	cmd := &cobra.Command{
		Use:   "songs",
		Short: "List the current view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("section") {
				s, err := views.ParseSection(section)
				if err != nil {
					return err
				}
				if err := a.engine.SetSection(s); err != nil {
					a.warn(errmsg.Format(errmsg.OpStateSave, err))
				}
			}

			next := a.engine.Filters()
			changed := false
			if reset {
				next, changed = views.Filters{}, true
			}
			set := func(flag string, dst *string, value string) {
				if cmd.Flags().Changed(flag) {
					*dst = value
					changed = true
				}
			}
			set("era", &next.Era, filters.Era)
			set("category", &next.Category, filters.Category)
			set("album", &next.Album, filters.Album)
			set("mood", &next.Mood, filters.Mood)
			if changed {
				if err := a.engine.SetFilters(next); err != nil {
					a.warn(errmsg.Format(errmsg.OpStateSave, err))
				}
			}

			a.printView()
			return nil
		},
	}
	cmd.Flags().StringVar(&filters.Era, "era", "", "filter by era (empty matches all)")
	cmd.Flags().StringVar(&filters.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&filters.Album, "album", "", "filter by album")
	cmd.Flags().StringVar(&filters.Mood, "mood", "", "filter by mood")
	cmd.Flags().StringVar(&section, "section", "", "songs, albums, playlists, radio, likes, or swipe")
	cmd.Flags().BoolVar(&reset, "clear", false, "clear all filters first")

	return cmd
}

func (a *App) openCommand() *cobra.Command {
	var lyricsLookup, play bool

	cmd := &cobra.Command{
		Use:   "open <n>",
		Short: "Open the nth track of the current view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			track, ok := a.engine.Open(index, play)
			if !ok {
				return fmt.Errorf("no track %d in view", index+1)
			}

			if lyricsLookup {
				ctx, cancel := a.withTimeout(cmd.Context())
				_, err := a.engine.FetchLyrics(ctx)
				cancel()
				if err != nil {
					a.warn(errmsg.FormatWith(errmsg.OpLyricsFetch, track.Title, err))
				}
			}

			// let the background cover lookup settle
			a.engine.Cover(track)
			a.engine.Wait()

			a.printTrack(a.engine.Snapshot())
			return nil
		},
	}
	cmd.Flags().BoolVar(&lyricsLookup, "lyrics", true, "look lyrics up when the track has none")
	cmd.Flags().BoolVar(&play, "play", true, "start playback once opened")

	return cmd
}

func (a *App) likeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "like <n>",
		Short: "Toggle the like of the nth track of the current view",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			tracks := a.engine.Snapshot().Tracks
			liked, err := a.engine.ToggleLike(index)
			if err != nil {
				return errors.New(errmsg.Format(errmsg.OpLikeToggle, err))
			}
			verb := "Unliked"
			if liked {
				verb = "Liked"
			}
			fmt.Fprintf(a.out, "%s %s\n", verb, tracks[index].Title)
			return nil
		},
	}
}

func (a *App) likesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "likes",
		Short: "List liked tracks, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			entries := a.engine.Likes()
			if len(entries) == 0 {
				fmt.Fprintln(a.out, errmsg.StatusEmptyLikes)
				return nil
			}
			rows := make([]row, 0, len(entries))
			for i, e := range entries {
				title := e.Track.Title
				if title == "" {
					title = e.Track.ID
				}
				when := "long ago"
				if !e.LikedAt.IsZero() {
					when = humanize.Time(e.LikedAt)
				}
				rows = append(rows, row{strconv.Itoa(i + 1), title, e.Track.Artist, when})
			}
			printRows(a.out, []int{4, 36, 24, 16}, rows)
			return nil
		},
	}
}

func (a *App) radioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "radio",
		Short: "Draw a radio batch and show it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.engine.SetSection(views.Radio{}); err != nil {
				a.warn(errmsg.Format(errmsg.OpStateSave, err))
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			a.engine.FillRadio(ctx)
			a.printView()
			return nil
		},
	}
}

func (a *App) swipeCommand() *cobra.Command {
	var deal bool

	cmd := &cobra.Command{
		Use:   "swipe",
		Short: "Show the swipe deck",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.engine.SetSection(views.Swipe{}); err != nil {
				a.warn(errmsg.Format(errmsg.OpStateSave, err))
			}
			if deal {
				if _, err := a.engine.DealDeck(); err != nil {
					a.warn(errmsg.Format(errmsg.OpStateSave, err))
				}
			}
			a.printView()
			return nil
		},
	}
	cmd.Flags().BoolVar(&deal, "deal", false, "deal a fresh deck")

	return cmd
}

func (a *App) erasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eras",
		Short: "List the filter values",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			opts := a.engine.Options()
			printList(a.out, "Eras", opts.Eras)
			categories := make([]string, 0, len(opts.Categories))
			for _, c := range opts.Categories {
				categories = append(categories, fmt.Sprintf("%s (%s)", c.Label, c.Value))
			}
			printList(a.out, "Categories", categories)
			printList(a.out, "Albums", opts.Albums)
			printList(a.out, "Moods", opts.Moods)
			return nil
		},
	}
}

func (a *App) searchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search the whole catalog by title, artist, album, or era",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			matches := a.engine.Search(strings.Join(args, " "), limit)
			if len(matches) == 0 {
				fmt.Fprintln(a.out, "No songs match your search.")
				return nil
			}
			rows := make([]row, 0, len(matches))
			for _, m := range matches {
				rows = append(rows, row{m.Track.Title, m.Track.Artist, m.Track.Era, m.Track.DurationText()})
			}
			printRows(a.out, []int{36, 24, 20}, rows)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results (0 for all)")

	return cmd
}

// parseIndex converts a 1-based argument to a view index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid track number %q", arg)
	}
	return n - 1, nil
}
