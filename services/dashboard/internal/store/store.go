package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"gigdash/common/cache"
	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/loader"
	"gigdash/services/dashboard/internal/models"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("gigdash/dashboard/store")

const snapshotKeyPrefix = "gigdash:dataset:"

// Store memoizes the job posting table for the lifetime of the process.
// The first call to Dataset loads it; every later call returns the same
// result, including a load error. The table is read-only once loaded.
type Store struct {
	source loader.Source
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger

	once    sync.Once
	dataset *models.Dataset
	err     error
	loads   atomic.Int32
}

type Option func(*Store)

// WithSnapshotCache keeps a parsed copy of the table in c, keyed by the
// source fingerprint, so a restarted process can skip parsing.
func WithSnapshotCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Store) {
		s.cache = c
		s.ttl = ttl
	}
}

func New(source loader.Source, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		source: source,
		cache:  cache.Noop{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dataset returns the memoized table, loading it on first use. The load is
// detached from the caller's cancellation: its outcome is kept for every
// later caller, so an abandoned first request must not decide it.
func (s *Store) Dataset(ctx context.Context) (*models.Dataset, error) {
	s.once.Do(func() {
		s.dataset, s.err = s.load(context.WithoutCancel(ctx))
	})
	return s.dataset, s.err
}

func (s *Store) load(ctx context.Context) (*models.Dataset, error) {
	ctx, span := tracer.Start(ctx, "Store.load")
	defer span.End()
	span.SetAttributes(telemetry.String("data.source", s.source.Name()))

	key := s.snapshotKey()
	if key != "" {
		if ds, ok := s.readSnapshot(ctx, key); ok {
			span.SetAttributes(telemetry.String("cache.result", "hit"))
			return ds, nil
		}
	}

	start := time.Now()
	s.loads.Add(1)
	ds, err := s.source.Load(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("failed to load dataset",
			zap.String("source", s.source.Name()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("loaded dataset",
		zap.String("source", s.source.Name()),
		zap.Int("rows", ds.Len()),
		zap.Int("missing_values", ds.MissingValues),
		zap.Duration("elapsed", time.Since(start)))

	if key != "" {
		s.writeSnapshot(ctx, key, ds)
	}
	return ds, nil
}

func (s *Store) snapshotKey() string {
	if _, noop := s.cache.(cache.Noop); noop {
		return ""
	}
	fp, ok := s.source.(loader.Fingerprinter)
	if !ok {
		return ""
	}
	raw, err := fp.Fingerprint()
	if err != nil {
		return ""
	}
	sum := sha256.Sum256([]byte(raw))
	return snapshotKeyPrefix + hex.EncodeToString(sum[:])
}

func (s *Store) readSnapshot(ctx context.Context, key string) (*models.Dataset, bool) {
	ds := &models.Dataset{}
	err := s.cache.Get(ctx, key, ds)
	switch {
	case err == nil && ds.Len() > 0:
		s.logger.Info("loaded dataset from snapshot",
			zap.String("key", key),
			zap.Int("rows", ds.Len()))
		return ds, true
	case err == nil, stderrors.Is(err, cache.ErrNotFound):
		s.logger.Debug("dataset snapshot miss", zap.String("key", key))
	default:
		s.logger.Warn("dataset snapshot read failed", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}

func (s *Store) writeSnapshot(ctx context.Context, key string, ds *models.Dataset) {
	if err := s.cache.Set(ctx, key, ds, s.ttl); err != nil {
		s.logger.Warn("dataset snapshot write failed", zap.String("key", key), zap.Error(err))
	}
}
