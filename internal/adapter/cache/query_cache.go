package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"vecstore/internal/domain"
	"vecstore/internal/port"
)

// QueryCache holds recent result sets. An entry is only served while the
// store generation it was computed at is still current.
type QueryCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
}

type cacheEntry struct {
	results    domain.ResultSet
	timestamp  time.Time
	generation uint64
}

func NewQueryCache(maxSize int, ttl time.Duration) (*QueryCache, error) {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	entries, err := lru.New[string, cacheEntry](maxSize)
	if err != nil {
		return nil, err
	}
	return &QueryCache{entries: entries, ttl: ttl}, nil
}

func cacheKey(collection, query string, topK int) string {
	data := []byte(collection)
	data = append(data, 0)
	data = append(data, query...)
	data = append(data, byte(topK>>8), byte(topK))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

func (c *QueryCache) Get(collection, query string, topK int, generation uint64) (domain.ResultSet, bool) {
	key := cacheKey(collection, query, topK)
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.generation != generation {
		c.entries.Remove(key)
		return nil, false
	}

	return append(domain.ResultSet{}, entry.results...), true
}

func (c *QueryCache) Put(collection, query string, topK int, generation uint64, results domain.ResultSet) {
	c.entries.Add(cacheKey(collection, query, topK), cacheEntry{
		results:    append(domain.ResultSet{}, results...),
		timestamp:  time.Now(),
		generation: generation,
	})
}

func (c *QueryCache) Invalidate() {
	c.entries.Purge()
}

func (c *QueryCache) Size() int {
	return c.entries.Len()
}

// CachedSearcher serves repeated queries against an unchanged store from a
// QueryCache.
type CachedSearcher struct {
	searcher   port.Searcher
	store      port.VectorStore
	collection string
	topK       int
	cache      *QueryCache
}

func NewCachedSearcher(searcher port.Searcher, store port.VectorStore, collection string, topK int, cache *QueryCache) *CachedSearcher {
	return &CachedSearcher{
		searcher:   searcher,
		store:      store,
		collection: collection,
		topK:       topK,
		cache:      cache,
	}
}

func (s *CachedSearcher) Search(ctx context.Context, query string) (domain.ResultSet, error) {
	generation := s.store.Generation()

	if results, hit := s.cache.Get(s.collection, query, s.topK, generation); hit {
		return results, nil
	}

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	s.cache.Put(s.collection, query, s.topK, generation, results)

	return results, nil
}
