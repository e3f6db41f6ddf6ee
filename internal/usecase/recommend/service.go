// Package recommend answers outfit queries with the nearest catalog items.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/recommend/query"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/recommend/result"
	"github.com/wardrobe-assistant/wardrobe/internal/logger"
)

// Stage is a step of a recommendation request.
type Stage string

// Request stages. Every request ends in StageReturned or StageFailed.
const (
	StageReceived Stage = "received"
	StageEncoded  Stage = "encoded"
	StageSearched Stage = "searched"
	StageFiltered Stage = "filtered"
	StageReturned Stage = "returned"
	StageFailed   Stage = "failed"
)

// Outcome labels for the requests counter.
const (
	outcomeReturned    = "returned"
	outcomeFailed      = "failed"
	outcomeUnavailable = "unavailable"
)

// Snapshot is the fitted encoder and index. Immutable once published.
type Snapshot struct {
	Encoder Encoder
	Index   Searcher
}

// Outcome is the result of one request. Items is empty on failure.
type Outcome struct {
	Items []result.Item
	Stage Stage
	// FailedAt is the last stage reached before a failure.
	FailedAt Stage
	Err      error
}

// Diagnostic returns a short failure description, or "" on success.
func (o Outcome) Diagnostic() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Metrics are optional collectors. Nil fields are skipped.
type Metrics struct {
	Requests *prometheus.CounterVec // label "outcome"
	Duration prometheus.Observer
	Results  prometheus.Observer
	Unseen   *prometheus.CounterVec // label "field"
}

// Service runs recommendation requests against a published snapshot.
type Service struct {
	snap        atomic.Pointer[Snapshot]
	neighbors   int
	placeholder string
	metrics     Metrics
}

// New creates a service that queries k neighbors and fills color_category with placeholder.
func New(k int, placeholder string, m Metrics) *Service {
	if k <= 0 {
		k = 5
	}
	if placeholder == "" {
		placeholder = query.DefaultPlaceholderColor
	}
	return &Service{neighbors: k, placeholder: placeholder, metrics: m}
}

// Publish installs the snapshot. Only the first call succeeds.
func (s *Service) Publish(snap Snapshot) error {
	if snap.Encoder == nil || snap.Index == nil {
		return errors.New("publish: incomplete snapshot")
	}
	if !s.snap.CompareAndSwap(nil, &snap) {
		return errors.New("publish: snapshot already published")
	}
	return nil
}

// Ready reports whether a snapshot has been published.
func (s *Service) Ready() bool { return s.snap.Load() != nil }

// Neighbors returns the configured k.
func (s *Service) Neighbors() int { return s.neighbors }

// Recommend returns catalog items similar to q whose gender matches exactly,
// nearest first. Failures yield an empty item list and Outcome.Err.
func (s *Service) Recommend(ctx context.Context, q query.Query) Outcome {
	start := time.Now()
	log := logger.FromContext(ctx)

	snap := s.snap.Load()
	if snap == nil {
		s.incRequests(outcomeUnavailable)
		return Outcome{Items: []result.Item{}, Stage: StageFailed, FailedAt: StageReceived, Err: domain.ErrIndexUnavailable}
	}

	out := s.run(ctx, snap, q)
	if s.metrics.Duration != nil {
		s.metrics.Duration.Observe(time.Since(start).Seconds())
	}

	if out.Err != nil {
		s.incRequests(outcomeFailed)
		log.Warn("Recommendation failed",
			zap.String("query", q.Key()),
			zap.String("failed_at", string(out.FailedAt)),
			zap.Error(out.Err),
		)
		return out
	}

	s.incRequests(outcomeReturned)
	if s.metrics.Results != nil {
		s.metrics.Results.Observe(float64(len(out.Items)))
	}
	log.Debug("Recommendation returned",
		zap.String("query", q.Key()),
		zap.Int("items", len(out.Items)),
	)
	return out
}

func (s *Service) run(ctx context.Context, snap *Snapshot, q query.Query) Outcome {
	failed := func(at Stage, err error) Outcome {
		return Outcome{Items: []result.Item{}, Stage: StageFailed, FailedAt: at, Err: err}
	}

	enc, err := snap.Encoder.Transform(q.Record(s.placeholder))
	if err != nil {
		return failed(StageReceived, fmt.Errorf("encode query: %w", err))
	}
	for _, f := range enc.Unseen {
		if s.metrics.Unseen != nil {
			s.metrics.Unseen.WithLabelValues(f.String()).Inc()
		}
		logger.FromContext(ctx).Debug("Query value outside vocabulary", zap.String("field", f.String()))
	}

	neighbors, err := snap.Index.Query(enc.Vector, s.neighbors)
	if err != nil {
		return failed(StageEncoded, fmt.Errorf("search neighbors: %w", err))
	}

	gender := q.Gender()
	items := make([]result.Item, 0, len(neighbors))
	for _, n := range neighbors {
		it := n.Item()
		if it.Gender() != gender {
			continue
		}
		if r, ok := result.FromNeighbor(n); ok {
			items = append(items, r)
		}
	}

	return Outcome{Items: items, Stage: StageReturned}
}

func (s *Service) incRequests(outcome string) {
	if s.metrics.Requests != nil {
		s.metrics.Requests.WithLabelValues(outcome).Inc()
	}
}
