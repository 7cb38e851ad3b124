package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"decision-framework-be/internal/model"
)

// HistoryRepository keeps the most recent decision results in memory.
// Results expire after a day; the id ring caps how many are listable.
type HistoryRepository struct {
	cache *cache.Cache

	mu      sync.Mutex
	ids     []uuid.UUID
	maxSize int
}

func NewHistoryRepository(maxSize int) *HistoryRepository {
	if maxSize <= 0 {
		maxSize = 100
	}
	// Expire after 24 hours, purge expired entries every hour
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &HistoryRepository{
		cache:   c,
		maxSize: maxSize,
	}
}

func (r *HistoryRepository) Save(result *model.DecisionResult) {
	r.cache.Set(result.Situation.Id.String(), result, cache.DefaultExpiration)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, result.Situation.Id)
	if len(r.ids) > r.maxSize {
		drop := r.ids[0 : len(r.ids)-r.maxSize]
		for _, id := range drop {
			r.cache.Delete(id.String())
		}
		r.ids = r.ids[len(r.ids)-r.maxSize:]
	}
}

func (r *HistoryRepository) Get(id uuid.UUID) (*model.DecisionResult, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*model.DecisionResult), true
	}
	return nil, false
}

// Recent returns up to limit results, newest first.
func (r *HistoryRepository) Recent(limit int) []*model.DecisionResult {
	r.mu.Lock()
	ids := make([]uuid.UUID, len(r.ids))
	copy(ids, r.ids)
	r.mu.Unlock()

	var out []*model.DecisionResult
	for i := len(ids) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if res, ok := r.Get(ids[i]); ok {
			out = append(out, res)
		}
	}
	return out
}
