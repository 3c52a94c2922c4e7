package dream

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jmylchreest/dreamspinner/internal/config"
)

// Deps are the shared collaborators handed to every dream constructor.
type Deps struct {
	Settings *config.Store
	Logger   *slog.Logger
}

// Entry is one catalog row.
type Entry struct {
	ID  ID
	New func(deps Deps) Dream
}

// Registry owns every dream instance, in catalog order.
type Registry struct {
	handles []*Handle
	byID    map[ID]*Handle
	logger  *slog.Logger
}

// NewRegistry constructs every dream in the catalog. The catalog is fixed at
// build time, so duplicate ids or names and constructor mismatches panic.
func NewRegistry(catalog []Entry, deps Deps) *Registry {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := &Registry{
		byID:   make(map[ID]*Handle, len(catalog)),
		logger: deps.Logger,
	}
	names := make(map[string]ID, len(catalog))

	for _, entry := range catalog {
		d := entry.New(Deps{
			Settings: deps.Settings,
			Logger:   deps.Logger.With("dream", string(entry.ID)),
		})
		if d.ID() != entry.ID {
			panic(fmt.Sprintf("dream: catalog entry %q constructed dream %q", entry.ID, d.ID()))
		}
		if _, exists := r.byID[entry.ID]; exists {
			panic(fmt.Sprintf("dream: duplicate id %q", entry.ID))
		}
		if other, exists := names[d.Name()]; exists {
			panic(fmt.Sprintf("dream: %q and %q share the name %q", other, entry.ID, d.Name()))
		}
		names[d.Name()] = entry.ID

		h := newHandle(d)
		r.handles = append(r.handles, h)
		r.byID[entry.ID] = h
	}
	return r
}

// List returns the visible dreams in catalog order.
func (r *Registry) List(allowDev bool) []Descriptor {
	out := make([]Descriptor, 0, len(r.handles))
	for _, h := range r.handles {
		if h.desc.InDevelopment && !allowDev {
			continue
		}
		out = append(out, h.desc)
	}
	return out
}

// Get returns the dream with the given id, or nil when it is hidden by the
// dev filter. An id missing from the catalog panics.
func (r *Registry) Get(id ID, allowDev bool) *Handle {
	h, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("dream: %q is not in the catalog", id))
	}
	if h.desc.InDevelopment && !allowDev {
		return nil
	}
	return h
}

// Lookup returns the dream with the given id if the catalog has one.
// Stored ids may name dreams from other versions, so absence is not fatal.
func (r *Registry) Lookup(id ID) (*Handle, bool) {
	h, ok := r.byID[id]
	return h, ok
}

// Handles returns every instance in catalog order.
func (r *Registry) Handles() []*Handle {
	return append([]*Handle(nil), r.handles...)
}

// Choose picks a random eligible dream from selected. Unknown and hidden ids
// are skipped.
func (r *Registry) Choose(selected []string, allowDev bool, rng *rand.Rand) (*Handle, error) {
	var eligible []*Handle
	for _, id := range selected {
		h, ok := r.byID[ID(id)]
		if !ok {
			r.logger.Debug("skipping unknown dream", "id", id)
			continue
		}
		if h.desc.InDevelopment && !allowDev {
			r.logger.Debug("skipping dream in development", "id", id)
			continue
		}
		eligible = append(eligible, h)
	}

	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoEligibleDream, selected)
	}
	if rng == nil {
		return eligible[rand.IntN(len(eligible))], nil
	}
	return eligible[rng.IntN(len(eligible))], nil
}

// StoreAll serializes every dream into the settings blob map.
func (r *Registry) StoreAll() error {
	var errs []error
	for _, h := range r.handles {
		if err := h.Store(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
