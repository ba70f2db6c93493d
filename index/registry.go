package index

import (
	"errors"
	"sort"
	"sync"
)

// ErrPageNotIndexed reports a lookup for a page the registry has no index
// for, either because it was never built or because it was invalidated.
var ErrPageNotIndexed = errors.New("index: page not indexed")

// Registry is the page-keyed store of text indices for one open document.
// It has an explicit lifecycle: created on document load, filled page by
// page, invalidated wholesale on reload or per page on re-OCR. Replacement
// is atomic; a reader sees either the fully-old or fully-new index for a
// page, never a partial one.
type Registry struct {
	mu    sync.RWMutex
	pages map[int]*PageTextIndex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[int]*PageTextIndex)}
}

// Put installs the index for its page, replacing any previous index.
func (r *Registry) Put(idx *PageTextIndex) {
	if idx == nil {
		return
	}
	r.mu.Lock()
	r.pages[idx.PageNumber] = idx
	r.mu.Unlock()
}

// Get returns the index for a page.
func (r *Registry) Get(pageNumber int) (*PageTextIndex, error) {
	r.mu.RLock()
	idx, ok := r.pages[pageNumber]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrPageNotIndexed
	}
	return idx, nil
}

// Invalidate discards the index for one page. The page simply becomes
// absent; it is rebuilt from scratch on the next indexing pass.
func (r *Registry) Invalidate(pageNumber int) {
	r.mu.Lock()
	delete(r.pages, pageNumber)
	r.mu.Unlock()
}

// Reset discards every page, as on document reload.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.pages = make(map[int]*PageTextIndex)
	r.mu.Unlock()
}

// Pages returns the indexed page numbers in ascending order.
func (r *Registry) Pages() []int {
	r.mu.RLock()
	nums := make([]int, 0, len(r.pages))
	for n := range r.pages {
		nums = append(nums, n)
	}
	r.mu.RUnlock()
	sort.Ints(nums)
	return nums
}

// Len returns the number of indexed pages.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.pages)
}
