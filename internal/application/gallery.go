package application

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"photonotes/internal/domain"
	"photonotes/internal/logger"
	"photonotes/internal/ports"
)

// Gallery owns the records of the current folder together with the filter,
// sort direction and bucket selection applied to them. Every change rebuilds
// the view from scratch; views handed out are never modified afterwards.
type Gallery struct {
	mu    sync.RWMutex
	store ports.MetadataStore
	log   *logger.Logger

	records []*domain.ImageRecord
	byID    map[string]int

	filter    domain.FilterSpec
	direction domain.SortDirection
	view      *domain.ViewIndex

	nav       domain.Navigator
	selection domain.Resolution
}

// NewGallery creates an empty gallery saving edits to store
func NewGallery(store ports.MetadataStore, log *logger.Logger) *Gallery {
	g := &Gallery{
		store: store,
		log:   log.Named("gallery"),
		byID:  make(map[string]int),
	}
	g.rebuild()
	return g
}

// Load replaces the record set and clears the bucket selection
func (g *Gallery) Load(records []*domain.ImageRecord) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.records = make([]*domain.ImageRecord, 0, len(records))
	g.byID = make(map[string]int, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		if _, dup := g.byID[r.Identity]; dup {
			continue
		}
		g.byID[r.Identity] = len(g.records)
		g.records = append(g.records, r)
	}
	g.nav.Clear()
	g.rebuild()
}

// Records returns the loaded records in load order
func (g *Gallery) Records() []*domain.ImageRecord {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return slices.Clone(g.records)
}

// Record returns the record for identity
func (g *Gallery) Record(identity string) (*domain.ImageRecord, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	i, ok := g.byID[identity]
	if !ok {
		return nil, false
	}
	return g.records[i], true
}

// View returns the current view
func (g *Gallery) View() *domain.ViewIndex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.view
}

// Filter returns the active filter
func (g *Gallery) Filter() domain.FilterSpec {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.filter
}

// Direction returns the active sort direction
func (g *Gallery) Direction() domain.SortDirection {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.direction
}

func (g *Gallery) SetFilter(spec domain.FilterSpec) *domain.ViewIndex {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.filter = spec
	g.rebuild()
	return g.view
}

func (g *Gallery) SetDirection(d domain.SortDirection) *domain.ViewIndex {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.direction = d
	g.rebuild()
	return g.view
}

func (g *Gallery) ToggleDirection() *domain.ViewIndex {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.direction = g.direction.Toggle()
	g.rebuild()
	return g.view
}

// Reset restores descending order, no filter and no selection
func (g *Gallery) Reset() *domain.ViewIndex {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.filter = domain.FilterSpec{}
	g.direction = domain.Descending
	g.nav.Clear()
	g.rebuild()
	return g.view
}

// Select toggles the bucket selection. Selecting the active bucket again
// returns a deselected resolution. An invalid selector matches nothing and
// keeps the current highlight.
func (g *Gallery) Select(sel domain.BucketKey) domain.Resolution {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := g.nav.Select(g.view, sel)
	if sel.Valid() {
		g.selection = res
	}
	return res
}

// Selection returns the highlight for the active bucket against the
// current view
func (g *Gallery) Selection() domain.Resolution {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.selection
}

// Models lists the camera models of every loaded record
func (g *Gallery) Models() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return domain.DistinctModels(g.records)
}

// Timeline summarises the buckets of the current view
func (g *Gallery) Timeline() []domain.TimePoint {
	return domain.Timeline(g.View())
}

// Edit saves patch for identity and, once the store confirms, merges the
// stored override into the record. On failure the record is unchanged.
func (g *Gallery) Edit(ctx context.Context, identity string, patch domain.Override) (*domain.ImageRecord, error) {
	if _, ok := g.Record(identity); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, identity)
	}

	stored, err := g.store.Save(ctx, identity, patch)
	if err != nil {
		g.log.Error("save %s: %v", identity, err)
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.byID[identity]
	if !ok {
		// Replaced by a newer scan while saving; the store holds the edit
		return nil, fmt.Errorf("%w: %s", ErrNotFound, identity)
	}

	updated := g.merge(g.records[i], stored)
	g.records[i] = updated
	g.rebuild()
	return updated, nil
}

// Refresh re-reads every stored override and merges it into the loaded
// records, e.g. after a snapshot import replaced the store contents
func (g *Gallery) Refresh(ctx context.Context) error {
	all, err := g.store.GetAll(ctx)
	if err != nil {
		return err
	}
	stored := make(map[string]*domain.StoredMetadata, len(all))
	for i := range all {
		stored[all[i].Identity] = &all[i]
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i, r := range g.records {
		g.records[i] = g.merge(r, stored[r.Identity])
	}
	g.rebuild()
	return nil
}

// merge returns a copy of r with stored applied, leaving r untouched for
// holders of earlier views
func (g *Gallery) merge(r *domain.ImageRecord, stored *domain.StoredMetadata) *domain.ImageRecord {
	updated := *r
	updated.Apply(stored)
	return &updated
}

// rebuild must be called with mu held
func (g *Gallery) rebuild() {
	g.view = domain.BuildView(g.records, g.filter.Predicate(), g.direction)

	if key, ok := g.nav.Active(); ok {
		g.selection = domain.Resolve(g.view, key)
	} else {
		g.selection = domain.Resolution{}
	}
}
