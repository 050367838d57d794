// Package reloader refreshes the served catalog from its source, on a fixed
// interval and on demand.
package reloader

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/assetdash/assetdash/internal/catalogsrv/apis"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogstore"
)

type Loader func(ctx context.Context) (*catalogstore.Catalog, error)

// SourceLoader loads the catalog named by opts.
func SourceLoader(opts catalogstore.LoadOptions) Loader {
	return func(ctx context.Context) (*catalogstore.Catalog, error) {
		return catalogstore.Load(ctx, opts)
	}
}

type Reloader struct {
	backend  *apis.Backend
	load     Loader
	interval time.Duration
	trigger  chan struct{}

	reloads  atomic.Uint64
	failures atomic.Uint64
}

// New returns a Reloader for b. A non-positive interval disables periodic
// reloads; Trigger still works.
func New(b *apis.Backend, load Loader, interval time.Duration) *Reloader {
	return &Reloader{
		backend:  b,
		load:     load,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger requests a reload. Requests made while one is pending coalesce.
func (r *Reloader) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Reload loads the catalog once and installs it. It reports whether the
// served catalog changed. On error the current catalog stays in place.
func (r *Reloader) Reload(ctx context.Context) (bool, error) {
	c, err := r.load(ctx)
	if err != nil {
		r.failures.Add(1)
		return false, errors.Wrap(err, "catalog reload failed")
	}
	changed := r.backend.Replace(ctx, c)
	if changed {
		r.reloads.Add(1)
	}
	return changed, nil
}

// Run reloads on every tick and trigger until ctx is done.
func (r *Reloader) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		case <-r.trigger:
		}
		changed, err := r.Reload(ctx)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("keeping current catalog")
			continue
		}
		if !changed {
			log.Ctx(ctx).Debug().Msg("catalog unchanged")
		}
	}
}

// Stats returns the number of reloads that changed the catalog and the
// number that failed.
func (r *Reloader) Stats() (reloads, failures uint64) {
	return r.reloads.Load(), r.failures.Load()
}
