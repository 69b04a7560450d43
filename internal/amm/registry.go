package amm

import (
	"sort"
	"sync"

	"github.com/cascade-dex/cpmm/internal/token"
	"github.com/cascade-dex/cpmm/internal/types"
)

// Registry owns every pool in the system, keyed by canonical pair. Each pool
// is locked independently; the registry lock only guards the map itself.
type Registry struct {
	mu    sync.RWMutex
	pools map[types.PoolID]*Pool

	escrowPrefix string
	notifier     Notifier
	metrics      *EngineMetrics
}

// NewRegistry creates an empty pool registry. notifier may be nil.
func NewRegistry(escrowPrefix string, notifier Notifier, metrics *EngineMetrics) *Registry {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Registry{
		pools:        make(map[types.PoolID]*Pool),
		escrowPrefix: escrowPrefix,
		notifier:     notifier,
		metrics:      metrics,
	}
}

// CreatePool registers a new pool for the pair. The pair key is canonical,
// so creating (X, Y) after (Y, X) fails with ErrPoolExists.
func (r *Registry) CreatePool(a, b token.Token) (*Pool, error) {
	pool, err := NewPool(a, b, r.escrowPrefix, r.notifier, r.metrics)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pools[pool.ID()]; exists {
		return nil, ErrPoolExists.Wrapf("pool %s already registered", pool.ID())
	}
	r.pools[pool.ID()] = pool

	if r.metrics != nil {
		r.metrics.PoolsTotal.Set(float64(len(r.pools)))
	}

	poolLogger.Info().
		Str("pool", string(pool.ID())).
		Str("escrow", pool.Escrow()).
		Msg("Pool created")

	return pool, nil
}

// GetPool looks up a pool by either ordering of its pair.
func (r *Registry) GetPool(denomA, denomB string) (*Pool, error) {
	return r.GetPoolByID(types.NewPoolID(denomA, denomB))
}

// GetPoolByID looks up a pool by canonical identity.
func (r *Registry) GetPoolByID(id types.PoolID) (*Pool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pool, ok := r.pools[id]
	if !ok {
		return nil, ErrPoolNotFound.Wrapf("no pool registered for %s", id)
	}
	return pool, nil
}

// Pools returns all registered pools ordered by identity.
func (r *Registry) Pools() []*Pool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Pool, 0, len(r.pools))
	for _, pool := range r.pools {
		out = append(out, pool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
