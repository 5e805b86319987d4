package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/ppiankov/newsverify/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a URL
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "newsverify:article:v1:" + hex.EncodeToString(hash[:])
}

// New builds the cache described by cfg: memory only when no disk directory
// is configured, memory over disk otherwise. Returns nil when disabled.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.DiskDir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.DiskDir, cfg.DiskTTL)
}

// ArticleCache stores extracted articles keyed by their URL
type ArticleCache struct {
	backend Cache
	ttl     time.Duration
}

// NewArticleCache wraps a byte cache for articles
func NewArticleCache(backend Cache, ttl time.Duration) *ArticleCache {
	return &ArticleCache{backend: backend, ttl: ttl}
}

// Get returns the cached article for url, if any
func (c *ArticleCache) Get(url string) (*model.Article, bool) {
	if c == nil || c.backend == nil {
		return nil, false
	}

	data, found := c.backend.Get(CacheKey(url))
	if !found {
		return nil, false
	}

	var article model.Article
	if err := json.Unmarshal(data, &article); err != nil {
		_ = c.backend.Delete(CacheKey(url))
		return nil, false
	}
	return &article, true
}

// Put stores the article under url
func (c *ArticleCache) Put(url string, article *model.Article) error {
	if c == nil || c.backend == nil || article == nil {
		return nil
	}

	data, err := json.Marshal(article)
	if err != nil {
		return err
	}
	return c.backend.Set(CacheKey(url), data, c.ttl)
}
