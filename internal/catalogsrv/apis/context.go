package apis

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/assetdash/assetdash/internal/catalogsrv/catalogstore"
	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/internal/common/eventbus"
	"github.com/assetdash/assetdash/internal/common/httpx"
)

// TopicCatalogReloaded is published with the new *catalogstore.Catalog
// whenever Replace installs a catalog with a different fingerprint.
const TopicCatalogReloaded = "catalog.reloaded"

// Backend is the state shared by all handlers: the loaded catalog, the view
// cache and the bus announcing catalog changes. The catalog can be replaced
// while requests are in flight; each request works on the catalog it read
// first.
type Backend struct {
	catalog atomic.Pointer[catalogstore.Catalog]
	Cache   *catalogview.Cache
	Events  *eventbus.Bus
}

func NewBackend(c *catalogstore.Catalog, cache *catalogview.Cache) *Backend {
	b := &Backend{
		Cache:  cache,
		Events: eventbus.New(),
	}
	b.catalog.Store(c)
	return b
}

// Catalog returns the current catalog, or nil if none is loaded.
func (b *Backend) Catalog() *catalogstore.Catalog {
	if b == nil {
		return nil
	}
	return b.catalog.Load()
}

// Replace installs c and reports whether it differs from the current
// catalog.
func (b *Backend) Replace(ctx context.Context, c *catalogstore.Catalog) bool {
	if c == nil {
		return false
	}
	old := b.catalog.Swap(c)
	if old != nil && old.Fingerprint() == c.Fingerprint() {
		return false
	}
	log.Ctx(ctx).Info().Str("fingerprint", c.Fingerprint()).Int("assets", c.Len()).Msg("catalog replaced")
	// Subscribers with a pending event are skipped; they read the current
	// catalog when they handle it.
	if b.Events != nil {
		b.Events.Publish(TopicCatalogReloaded, c, 0)
	}
	return true
}

type backendContextKey struct{}

func WithBackend(ctx context.Context, b *Backend) context.Context {
	return context.WithValue(ctx, backendContextKey{}, b)
}

func BackendFromContext(ctx context.Context) *Backend {
	b, _ := ctx.Value(backendContextKey{}).(*Backend)
	return b
}

// LoadBackendContext makes b available to the handlers below it.
func LoadBackendContext(b *Backend) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if b.Catalog() == nil {
				httpx.SendError(w, ErrCatalogNotReady)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithBackend(r.Context(), b)))
		})
	}
}

// snapshot is the backend state a single request works on.
type snapshot struct {
	catalog *catalogstore.Catalog
	cache   *catalogview.Cache
}

func backend(r *http.Request) (snapshot, error) {
	b := BackendFromContext(r.Context())
	c := b.Catalog()
	if c == nil {
		return snapshot{}, ErrCatalogNotReady
	}
	return snapshot{catalog: c, cache: b.Cache}, nil
}
