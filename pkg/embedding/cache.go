package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedVector is one cache entry. Entries are idempotent for a given key,
// so a lost update on a racing duplicate insert is harmless.
type CachedVector struct {
	Values   []float32
	CachedAt time.Time
}

// VectorCache stores embedding vectors keyed by (text, provider, provider
// version). It is insert-only and never evicted within a process lifetime;
// a provider or embedding-text change produces a different key, which is the
// whole invalidation story.
type VectorCache struct {
	cache *cache.Cache
}

func NewVectorCache() *VectorCache {
	// No expiration, no janitor: entries live as long as the process.
	return &VectorCache{cache: cache.New(cache.NoExpiration, 0)}
}

// Key builds the stable cache key for a text embedded by a provider.
func Key(text, provider, version string) string {
	sum := sha256.Sum256([]byte(text + "|" + provider + "|" + version))
	return hex.EncodeToString(sum[:])
}

func (v *VectorCache) Get(text, provider, version string) (*CachedVector, bool) {
	if x, found := v.cache.Get(Key(text, provider, version)); found {
		return x.(*CachedVector), true
	}
	return nil, false
}

func (v *VectorCache) Set(text, provider, version string, values []float32) {
	v.cache.Set(Key(text, provider, version), &CachedVector{
		Values:   values,
		CachedAt: time.Now(),
	}, cache.NoExpiration)
}

// Len returns the number of cached vectors.
func (v *VectorCache) Len() int {
	return v.cache.ItemCount()
}
