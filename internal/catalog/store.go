package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/battlebrain/predict-api/internal/models"
)

// Prometheus metrics
var (
	catalogEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "battlebrain_catalog_entries",
		Help: "Number of Pokemon in the active catalog snapshot",
	})

	catalogLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "battlebrain_catalog_loads_total",
		Help: "Catalog loads by result",
	}, []string{"result"})
)

// loadTimeout bounds a shared first load
const loadTimeout = 60 * time.Second

// snapshot is never mutated after it is published
type snapshot struct {
	byID     map[int]models.Pokemon
	version  string
	loadedAt time.Time
}

// Store serves lookups from the current catalog snapshot. Reloads build a new
// snapshot off to the side and publish it with a single atomic swap.
type Store struct {
	source  Source
	logger  *zap.SugaredLogger
	current atomic.Pointer[snapshot]
	group   singleflight.Group
}

func NewStore(source Source, logger *zap.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.Sugar(),
	}
}

// Load builds the first snapshot. It is a no-op once a snapshot exists, and
// concurrent first callers share one read of the source. The shared read is
// detached from the caller's cancellation and bounded by loadTimeout; a
// caller whose ctx ends stops waiting without aborting it for the others.
func (s *Store) Load(ctx context.Context) error {
	if s.current.Load() != nil {
		return nil
	}
	ch := s.group.DoChan("load", func() (interface{}, error) {
		if s.current.Load() != nil {
			return nil, nil
		}
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return nil, s.refresh(loadCtx)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reload replaces the snapshot with a fresh read of the source. On failure the
// previous snapshot stays active.
func (s *Store) Reload(ctx context.Context) error {
	_, err, _ := s.group.Do("reload", func() (interface{}, error) {
		return nil, s.refresh(ctx)
	})
	return err
}

func (s *Store) refresh(ctx context.Context) error {
	start := time.Now()
	records, err := s.source.Load(ctx)
	if err != nil {
		catalogLoads.WithLabelValues("error").Inc()
		s.logger.Errorw("Catalog load failed", "source", s.source.Name(), "error", err)
		return fmt.Errorf("load catalog from %s: %w", s.source.Name(), err)
	}
	if err := validateRecords(records); err != nil {
		catalogLoads.WithLabelValues("error").Inc()
		return fmt.Errorf("load catalog from %s: %w", s.source.Name(), err)
	}

	byID := make(map[int]models.Pokemon, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}
	snap := &snapshot{
		byID:     byID,
		version:  uuid.NewString(),
		loadedAt: time.Now().UTC(),
	}
	s.current.Store(snap)

	catalogLoads.WithLabelValues("success").Inc()
	catalogEntries.Set(float64(len(byID)))
	s.logger.Infow("Catalog loaded",
		"source", s.source.Name(),
		"entries", len(byID),
		"version", snap.version,
		"duration", time.Since(start),
	)
	return nil
}

// Get returns a copy of the record for id, loading the catalog first if no
// snapshot exists yet.
func (s *Store) Get(ctx context.Context, id int) (models.Pokemon, error) {
	snap := s.current.Load()
	if snap == nil {
		if err := s.Load(ctx); err != nil {
			return models.Pokemon{}, err
		}
		snap = s.current.Load()
	}

	p, ok := snap.byID[id]
	if !ok {
		return models.Pokemon{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return p, nil
}

// Loaded reports whether a snapshot is being served
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

// Len returns the number of records in the current snapshot
func (s *Store) Len() int {
	if snap := s.current.Load(); snap != nil {
		return len(snap.byID)
	}
	return 0
}

// Version identifies the current snapshot; empty before the first load
func (s *Store) Version() string {
	if snap := s.current.Load(); snap != nil {
		return snap.version
	}
	return ""
}

// LoadedAt is the time the current snapshot was published
func (s *Store) LoadedAt() time.Time {
	if snap := s.current.Load(); snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}
