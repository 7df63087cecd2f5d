package layout

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/verte-zerg/passage/internal/glyph"
)

type memoKey struct {
	text     string
	metrics  string
	geometry Geometry
}

// Memo caches layout results keyed on text, metrics and geometry. Cached
// results are shared and must not be modified.
type Memo struct {
	cache *lru.Cache[memoKey, Result]
}

// NewMemo returns a memo holding up to size results. A size of zero returns
// nil, which computes every layout from scratch.
func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		return nil, nil
	}
	cache, err := lru.New[memoKey, Result](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout cache: %w", err)
	}
	return &Memo{cache: cache}, nil
}

// Compute returns the cached layout or computes and stores it.
func (m *Memo) Compute(text []rune, metrics glyph.Metrics, g Geometry) (Result, error) {
	if m == nil {
		return Compute(text, metrics, g)
	}
	key := memoKey{text: string(text), metrics: metrics.Name(), geometry: g}
	if res, ok := m.cache.Get(key); ok {
		return res, nil
	}
	res, err := Compute(text, metrics, g)
	if err != nil {
		return Result{}, err
	}
	m.cache.Add(key, res)
	return res, nil
}

// Len returns the number of cached layouts.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	return m.cache.Len()
}
