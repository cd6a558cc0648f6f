package catalogapi

import (
	"context"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultPageSize is the number of songs requested per page.
const DefaultPageSize = 80

// SongQuery selects a page of the song listing.
type SongQuery struct {
	Page     int
	PageSize int
	Era      string
	Category string
}

// Era is an era option.
type Era struct {
	Name string
}

// Category is a category option.
type Category struct {
	Label string
	Value string
}

// Songs returns the raw song records of one listing page.
func (c *Client) Songs(ctx context.Context, q SongQuery) ([]gjson.Result, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	body, err := c.FetchJSON(ctx, "/songs/", map[string]string{
		"page":      strconv.Itoa(q.Page),
		"page_size": strconv.Itoa(q.PageSize),
		"era":       q.Era,
		"category":  q.Category,
	})
	if err != nil {
		return nil, err
	}
	return records(body, "results"), nil
}

// Eras returns the era options. Entries without a name are skipped.
func (c *Client) Eras(ctx context.Context) ([]Era, error) {
	body, err := c.FetchJSON(ctx, "/eras/", nil)
	if err != nil {
		return nil, err
	}
	var eras []Era
	for _, r := range records(body, "results") {
		name := strings.TrimSpace(r.Get("name").String())
		if name == "" && r.Type == gjson.String {
			name = strings.TrimSpace(r.Str)
		}
		if name != "" {
			eras = append(eras, Era{Name: name})
		}
	}
	return eras, nil
}

// Categories returns the category options. Entries missing a label or
// value are skipped.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	body, err := c.FetchJSON(ctx, "/categories/", nil)
	if err != nil {
		return nil, err
	}
	var categories []Category
	for _, r := range records(body, "categories") {
		label := r.Get("label").String()
		value := r.Get("value").String()
		if label != "" && value != "" {
			categories = append(categories, Category{Label: label, Value: value})
		}
	}
	return categories, nil
}

// RandomSong returns a single random song record. The endpoint answers
// either with the song itself or with a {"song": ...} envelope.
func (c *Client) RandomSong(ctx context.Context) (gjson.Result, error) {
	body, err := c.FetchJSON(ctx, "/radio/random/", nil)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, nil
	}
	root := gjson.ParseBytes(body)
	if song := root.Get("song"); song.IsObject() {
		return song, nil
	}
	return root, nil
}
