package source

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/model"
)

// setLoader is the part of Loader the catalog depends on.
type setLoader interface {
	Load(ctx context.Context) (*model.RecordSet, error)
	Peek(ctx context.Context) (string, string, error)
}

// Catalog holds the current record set. The set is loaded on first use and
// replaced only by an explicit Reload or by Refresh noticing a changed
// source; there is no time-based expiry.
type Catalog struct {
	loader setLoader

	mu  sync.RWMutex
	set *model.RecordSet
}

// NewCatalog creates an empty catalog backed by loader.
func NewCatalog(loader setLoader) *Catalog {
	return &Catalog{loader: loader}
}

// Get returns the current record set, loading it if nothing is loaded yet.
// A load failure is returned as-is and nothing is cached, so the next call
// tries again.
func (c *Catalog) Get(ctx context.Context) (*model.RecordSet, error) {
	c.mu.RLock()
	set := c.set
	c.mu.RUnlock()
	if set != nil {
		return set, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.set != nil {
		return c.set, nil
	}
	set, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.set = set
	return set, nil
}

// Reload loads the source again and replaces the current set. On failure the
// previous set stays in place.
func (c *Catalog) Reload(ctx context.Context) (*model.RecordSet, error) {
	set, err := c.loader.Load(ctx)
	if err != nil {
		zap.L().Warn("source reload failed, keeping previous records", zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.set = set
	c.mu.Unlock()
	return set, nil
}

// Refresh reloads only when the first available candidate differs from the
// loaded set by path or content fingerprint. It reports whether a reload
// happened.
func (c *Catalog) Refresh(ctx context.Context) (bool, error) {
	c.mu.RLock()
	current := c.set
	c.mu.RUnlock()

	if current != nil {
		path, version, err := c.loader.Peek(ctx)
		if err == nil && path == current.Source() && version == current.Version() {
			return false, nil
		}
	}
	if _, err := c.Reload(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Loaded returns the current set without triggering a load. It returns nil
// when nothing has been loaded.
func (c *Catalog) Loaded() *model.RecordSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set
}
