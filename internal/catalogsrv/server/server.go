package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/assetdash/assetdash/internal/catalogsrv/apis"
	"github.com/assetdash/assetdash/internal/catalogsrv/config"
	"github.com/assetdash/assetdash/internal/catalogsrv/live"
	"github.com/assetdash/assetdash/internal/common/httpx"
	commonmiddleware "github.com/assetdash/assetdash/internal/common/middleware"
	"github.com/assetdash/assetdash/pkg/api"
)

type CatalogServer struct {
	Router  *chi.Mux
	backend *apis.Backend
	live    *live.Handler
}

func CreateNewServer(b *apis.Backend) (*CatalogServer, error) {
	s := &CatalogServer{
		backend: b,
	}
	s.Router = chi.NewRouter()
	cfg := config.Config()
	if cfg.LiveEnabled {
		s.live = live.NewHandler(b, live.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			MaxMessageSize: int64(cfg.LiveMaxMessageSize),
			MaxSessions:    cfg.LiveMaxSessions,
		})
	}
	return s, nil
}

func (s *CatalogServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(s.HandleCORS)
	}
	// Set before mounting so sub-routers inherit them.
	s.Router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.ErrNotFound().Send(w)
	})
	s.Router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.ErrReqMethodNotSupported().Send(w)
	})
	s.Router.Get("/version", s.getVersion)
	s.Router.Get("/ready", s.getReadiness)
	if s.live != nil {
		s.Router.Route("/live", s.live.Router)
	}
	s.Router.Route("/", s.mountResourceHandlers)
	if config.Config().LogRoutes {
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			log.Info().Str("method", method).Str("route", route).Msg("route")
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			log.Error().Err(err).Msg("unable to walk routes")
		}
	}
}

func (s *CatalogServer) mountResourceHandlers(r chi.Router) {
	apis.Router(r, s.backend)
}

func (s *CatalogServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &api.GetVersionRsp{
		ServerVersion: "AssetDash Catalog Server: " + api.ServerVersion,
		ApiVersion:    api.ApiVersion,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

func (s *CatalogServer) getReadiness(w http.ResponseWriter, r *http.Request) {
	if s.backend.Catalog() == nil {
		httpx.SendJsonRsp(r.Context(), w, http.StatusServiceUnavailable, &api.ReadyRsp{Ready: false})
		return
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, &api.ReadyRsp{
		Ready:       true,
		Fingerprint: s.backend.Catalog().Fingerprint(),
	})
}

func (s *CatalogServer) HandleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   config.Config().AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", commonmiddleware.RequestIDHeader},
		ExposedHeaders:   []string{"Link", "Location", commonmiddleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
