package masterdata

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheTTL = 5 * time.Minute

	tablesKey = "tables"
)

var ErrSourceRequired = errors.New("masterdata: source required")

// CachedSource memoiza las tablas de referencia durante ttl.
// Las tablas cambian poco y cada búsqueda las necesita completas.
type CachedSource struct {
	src   Source
	cache *lru.LRU[string, Tables]

	hits   atomic.Int64
	misses atomic.Int64
}

var _ Source = (*CachedSource)(nil)

func NewCachedSource(src Source, ttl time.Duration) (*CachedSource, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		src:   src,
		cache: lru.NewLRU[string, Tables](1, nil, ttl),
	}, nil
}

func (c *CachedSource) Tables(ctx context.Context) (Tables, error) {
	if t, ok := c.cache.Get(tablesKey); ok {
		c.hits.Add(1)
		return t, nil
	}
	c.misses.Add(1)

	t, err := c.src.Tables(ctx)
	if err != nil {
		return nil, err
	}
	if t == nil {
		t = NewTables()
	}
	c.cache.Add(tablesKey, t)
	return t, nil
}

// Invalidate fuerza recarga en la próxima llamada.
func (c *CachedSource) Invalidate() {
	c.cache.Purge()
}

// Stats devuelve (hits, misses).
func (c *CachedSource) Stats() (int64, int64) {
	return c.hits.Load(), c.misses.Load()
}
