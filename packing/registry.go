package packing

import "sync"

// Registry hands out the one Draft instance per operator key. Keeping the
// instance alive between requests is what keeps the removal guard scoped
// to the draft instead of resetting on every request.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft

	store     DraftStore
	catalog   CatalogLookup
	customers CustomerLookup
}

func NewRegistry(store DraftStore, catalog CatalogLookup, customers CustomerLookup) *Registry {
	return &Registry{
		drafts:    make(map[string]*Draft),
		store:     store,
		catalog:   catalog,
		customers: customers,
	}
}

// Draft returns the live draft for key, loading it from the store on
// first access.
func (r *Registry) Draft(key string) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.drafts[key]; ok {
		return d
	}
	d := NewDraft(key, r.store, r.catalog, r.customers)
	r.drafts[key] = d
	return d
}
