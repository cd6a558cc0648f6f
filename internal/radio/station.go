// Package radio fills the radio section with random picks from the catalog
// service.
package radio

import (
	"context"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/wrld/internal/catalog"
)

// Defaults.
const (
	DefaultBatchSize  = 10
	DefaultRecentSize = 200
	maxConcurrent     = 4
)

// Picker returns one random song record per call.
type Picker interface {
	RandomSong(ctx context.Context) (gjson.Result, error)
}

// Station draws radio batches. Tracks served in a recent batch are
// suppressed from the following ones.
type Station struct {
	picker     Picker
	normalizer catalog.Normalizer
	recent     *Recent
	logger     *zap.Logger
}

// NewStation creates a station. recentSize caps the suppression window.
func NewStation(picker Picker, normalizer catalog.Normalizer, recentSize int, logger *zap.Logger) *Station {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Station{
		picker:     picker,
		normalizer: normalizer,
		recent:     NewRecent(recentSize),
		logger:     logger.Named("radio"),
	}
}

// Fill issues n random picks, at most four at a time, and returns the
// distinct tracks among them in pick order. Failed picks and recently
// served tracks are dropped, so the batch can be shorter than n. Each pick
// is a single attempt.
func (s *Station) Fill(ctx context.Context, n int) []catalog.Track {
	if n <= 0 {
		n = DefaultBatchSize
	}

	picks := make([]gjson.Result, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i := range picks {
		g.Go(func() error {
			rec, err := s.picker.RandomSong(gctx)
			if err != nil {
				s.logger.Debug("random pick failed", zap.Int("pick", i), zap.Error(err))
				return nil
			}
			picks[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	records := make([]gjson.Result, 0, n)
	for _, rec := range picks {
		if rec.IsObject() {
			records = append(records, rec)
		}
	}

	var batch []catalog.Track
	for _, t := range s.normalizer.Normalize(records) {
		key := t.DedupKey()
		if s.recent.Has(key) {
			continue
		}
		s.recent.Add(key)
		batch = append(batch, t)
	}
	if batch == nil {
		batch = []catalog.Track{}
	}
	s.logger.Debug("radio batch", zap.Int("requested", n), zap.Int("served", len(batch)))
	return batch
}

// Forget clears the suppression window.
func (s *Station) Forget() {
	s.recent.Clear()
}
