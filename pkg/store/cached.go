package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tableplan/pkg/cache"
	"github.com/matzehuels/tableplan/pkg/observability"
)

const cacheKeyType = "layout"

// Cached puts a cache in front of a Store. Fetch reads through the cache;
// Put writes the backend first and then refreshes the cache entry. Cache
// failures are logged and never fail an operation.
type Cached struct {
	inner  Store
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// NewCached wraps inner. A nil keyer uses [cache.NewDefaultKeyer]; a nil
// logger uses log.Default().
func NewCached(inner Store, c cache.Cache, keyer cache.Keyer, ttl time.Duration, logger *log.Logger) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{inner: inner, cache: c, keyer: keyer, ttl: ttl, logger: logger}
}

type cachedRecord struct {
	UpdatedAt time.Time `json:"updatedAt"`
	LayoutRecord
}

func (s *Cached) Fetch(ctx context.Context, venueID string) (*Document, error) {
	key := s.keyer.LayoutKey(venueID)

	var rec cachedRecord
	switch err := cache.GetJSON(ctx, s.cache, key, &rec); {
	case err == nil:
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		doc := DecodeDocument(rec.LayoutRecord, s.logger)
		doc.UpdatedAt = rec.UpdatedAt
		return &doc, nil
	case stderrors.Is(err, cache.ErrCacheMiss):
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	default:
		s.logger.Warn("layout cache read failed", "venue", venueID, "error", err)
	}

	doc, err := s.inner.Fetch(ctx, venueID)
	if err != nil || doc == nil {
		return doc, err
	}
	s.store(ctx, key, *doc)
	return doc, nil
}

func (s *Cached) Put(ctx context.Context, venueID string, doc Document) error {
	if err := s.inner.Put(ctx, venueID, doc); err != nil {
		return err
	}
	s.store(ctx, s.keyer.LayoutKey(venueID), doc)
	return nil
}

// Invalidate drops the cached document of a venue.
func (s *Cached) Invalidate(ctx context.Context, venueID string) error {
	return s.cache.Delete(ctx, s.keyer.LayoutKey(venueID))
}

func (s *Cached) store(ctx context.Context, key string, doc Document) {
	rec := cachedRecord{UpdatedAt: doc.UpdatedAt, LayoutRecord: EncodeDocument(doc)}
	if err := cache.SetJSON(ctx, s.cache, key, rec, s.ttl); err != nil {
		s.logger.Warn("layout cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, doc.Tables.Len())
}

var _ Store = (*Cached)(nil)
