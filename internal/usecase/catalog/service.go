// Package catalog builds the encoder and nearest-neighbor index from the product catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/wardrobe-assistant/wardrobe/internal/domain"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/attribute"
	domcat "github.com/wardrobe-assistant/wardrobe/internal/domain/catalog"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/feature"
	"github.com/wardrobe-assistant/wardrobe/internal/domain/record"
)

// StateSource tells where the encoder vocabularies came from.
type StateSource string

// State sources.
const (
	SourceFitted StateSource = "fitted" // fitted from the catalog just loaded
	SourceStored StateSource = "stored" // stored state matched the fitted one
	SourcePinned StateSource = "pinned" // stored state used as is
)

// Options lists the distinct values of each query field, in first-seen catalog order.
type Options map[attribute.Name][]string

// Built is the outcome of a catalog build.
type Built struct {
	Encoder *feature.Encoder
	Index   *domcat.Index
	Source  StateSource
}

// Service loads the catalog once and derives the encoder, index and options from it.
type Service struct {
	loader     Loader
	state      StateStore
	pin        bool
	itemsGauge prometheus.Gauge
	logger     *zap.Logger

	options atomic.Pointer[Options]
}

// New creates a catalog service. state and itemsGauge can be nil.
// With pin set, a stored state is reused even when the catalog vocabulary changed.
func New(
	loader Loader,
	state StateStore,
	pin bool,
	itemsGauge prometheus.Gauge,
	logger *zap.Logger,
) *Service {
	return &Service{
		loader:     loader,
		state:      state,
		pin:        pin,
		itemsGauge: itemsGauge,
		logger:     logger,
	}
}

// Build loads the catalog, resolves the encoder and builds the index.
// Any error is fatal for the process: nothing may be served without an index.
func (s *Service) Build(ctx context.Context) (Built, error) {
	items, err := s.loader.Load(ctx)
	if err != nil {
		return Built{}, fmt.Errorf("load catalog: %w", err)
	}

	records := make([]record.Record, len(items))
	for i := range items {
		records[i] = items[i].Attributes()
	}

	enc, source, err := s.resolveEncoder(ctx, records)
	if err != nil {
		return Built{}, err
	}

	idx, err := domcat.BuildIndex(items, func(it domcat.Item) feature.Vector {
		return enc.TransformCatalog(it.Attributes())
	})
	if err != nil {
		return Built{}, fmt.Errorf("build index: %w", err)
	}

	opts := collectOptions(records)
	s.options.Store(&opts)
	if s.itemsGauge != nil {
		s.itemsGauge.Set(float64(idx.Len()))
	}

	s.logger.Info("Catalog index built",
		zap.Int("items", idx.Len()),
		zap.Int("dim", idx.Dim()),
		zap.String("state_source", string(source)),
	)
	return Built{Encoder: enc, Index: idx, Source: source}, nil
}

// Options returns the query field values seen in the catalog.
func (s *Service) Options() (Options, error) {
	p := s.options.Load()
	if p == nil {
		return nil, domain.ErrIndexUnavailable
	}
	out := make(Options, len(*p))
	for k, v := range *p {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

func (s *Service) resolveEncoder(
	ctx context.Context, records []record.Record,
) (*feature.Encoder, StateSource, error) {
	fitted, err := feature.Fit(attribute.Features, records)
	if err != nil {
		return nil, "", fmt.Errorf("fit encoder: %w", err)
	}
	if s.state == nil {
		return fitted, SourceFitted, nil
	}

	stored, found, err := s.state.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrStateMismatch):
		s.logger.Warn("Stored encoder state is unusable, refitting", zap.Error(err))
		found = false
	case err != nil:
		if s.pin {
			return nil, "", fmt.Errorf("load pinned encoder state: %w", err)
		}
		s.logger.Warn("Failed to load encoder state, using fitted state", zap.Error(err))
		return fitted, SourceFitted, nil
	}

	if found && !stored.Covers(attribute.Features) {
		s.logger.Warn("Stored encoder state covers other fields, refitting")
		found = false
	}

	if found && s.pin {
		enc, err := feature.FromState(stored)
		if err != nil {
			return nil, "", fmt.Errorf("restore pinned encoder state: %w", err)
		}
		if !stored.Equal(fitted.State()) {
			s.logger.Warn("Pinned encoder state differs from the catalog vocabulary")
		}
		return enc, SourcePinned, nil
	}
	if found && stored.Equal(fitted.State()) {
		return fitted, SourceStored, nil
	}

	if err := s.state.Save(ctx, fitted.State()); err != nil {
		s.logger.Warn("Failed to save encoder state", zap.Error(err))
	}
	return fitted, SourceFitted, nil
}

func collectOptions(records []record.Record) Options {
	opts := make(Options, len(attribute.QueryFields))
	seen := make(map[attribute.Name]map[string]bool, len(attribute.QueryFields))
	for _, f := range attribute.QueryFields {
		opts[f] = []string{}
		seen[f] = make(map[string]bool)
	}
	for _, r := range records {
		for _, f := range attribute.QueryFields {
			v, ok := r.Get(f)
			if !ok || seen[f][v] {
				continue
			}
			seen[f][v] = true
			opts[f] = append(opts[f], v)
		}
	}
	return opts
}
