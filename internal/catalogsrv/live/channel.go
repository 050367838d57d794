// Package live serves the dashboard view over a websocket. A client sends
// LiveRequest messages as the user changes filters or the selection and
// receives the recomputed view for each one. When the catalog is replaced
// every session is pushed a fresh view for its current state.
package live

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	json "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/assetdash/assetdash/internal/catalogsrv/apis"
	"github.com/assetdash/assetdash/internal/common/eventbus"
	"github.com/assetdash/assetdash/internal/common/httpx"
	"github.com/assetdash/assetdash/pkg/api"
)

const (
	Subprotocol      = "assetdash.live.v1"
	handshakeTimeout = 5 * time.Second
	writeTimeout     = 5 * time.Second
	pongTimeout      = 60 * time.Second
	pingInterval     = 45 * time.Second
)

type Options struct {
	AllowedOrigins []string
	MaxMessageSize int64
	MaxSessions    int
}

type Handler struct {
	backend  *apis.Backend
	opts     Options
	sessions *Registry
	upgrader websocket.Upgrader
}

func NewHandler(b *apis.Backend, opts Options) *Handler {
	h := &Handler{
		backend:  b,
		opts:     opts,
		sessions: NewRegistry(opts.MaxSessions),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin:      h.checkOrigin,
		HandshakeTimeout: handshakeTimeout,
		Subprotocols:     []string{Subprotocol},
	}
	return h
}

func (h *Handler) Sessions() *Registry {
	return h.sessions
}

// checkOrigin accepts same-host requests, requests without an Origin header
// and the configured origins. "*" allows any origin.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if lo.Contains(h.opts.AllowedOrigins, "*") {
		return true
	}
	if lo.ContainsBy(h.opts.AllowedOrigins, func(o string) bool {
		return strings.EqualFold(strings.TrimSuffix(o, "/"), origin)
	}) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/", h.ServeHTTP)
	r.Method(http.MethodGet, "/sessions", httpx.WrapHttpRsp(h.listSessions))
}

func (h *Handler) listSessions(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   h.sessions.List(),
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.backend.Catalog() == nil {
		httpx.SendError(w, apis.ErrCatalogNotReady)
		return
	}
	session := &Session{
		ID:        newSessionID(),
		StartedAt: time.Now().UTC(),
	}
	if err := h.sessions.Create(session); err != nil {
		httpx.SendError(w, err)
		return
	}
	defer h.sessions.Delete(session.ID)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil || conn == nil {
		// Upgrade has already replied to the client.
		log.Ctx(ctx).Error().Err(err).Msg("failed to upgrade connection to WebSocket")
		return
	}
	ctx = log.Ctx(ctx).With().Str("session_id", session.ID).Logger().WithContext(ctx)
	log.Ctx(ctx).Info().Msg("live session started")
	defer gracefulCloseWithCode(ctx, conn, websocket.CloseNormalClosure, "live session closed")

	if h.opts.MaxMessageSize > 0 {
		conn.SetReadLimit(h.opts.MaxMessageSize)
	}
	h.serve(ctx, conn, session)
}

func (h *Handler) serve(ctx context.Context, conn *websocket.Conn, session *Session) {
	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(conn, done)

	var reloads <-chan eventbus.Event
	if h.backend.Events != nil {
		var unsubscribe func()
		reloads, unsubscribe = h.backend.Events.Subscribe(apis.TopicCatalogReloaded, 1)
		defer unsubscribe()
	}
	messages, readErr := readMessages(conn, done)

	// An initial view so the client can render before its first request.
	if err := h.respond(ctx, conn, session, 0, false); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Ctx(ctx).Error().Err(err).Msg("live session read failed")
			}
			return
		case _, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			log.Ctx(ctx).Debug().Msg("pushing view for reloaded catalog")
			if err := h.respond(ctx, conn, session, session.LastSeq, true); err != nil {
				return
			}
		case msg := <-messages:
			if err := h.handleMessage(ctx, conn, session, msg); err != nil {
				return
			}
		}
	}
}

func (h *Handler) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

// readMessages reads text frames until the connection fails. The error
// channel receives exactly one value.
func readMessages(conn *websocket.Conn, done <-chan struct{}) (<-chan []byte, <-chan error) {
	messages := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			if msgType != websocket.TextMessage {
				continue
			}
			select {
			case messages <- msg:
			case <-done:
				return
			}
		}
	}()
	return messages, readErr
}

func (h *Handler) handleMessage(ctx context.Context, conn *websocket.Conn, session *Session, msg []byte) error {
	req, err := decodeRequest(msg)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("dropping malformed message")
		return h.write(conn, &api.LiveResponse{
			Seq:     gjson.GetBytes(msg, "seq").Uint(),
			Session: session.ID,
			Error:   err.Error(),
		})
	}
	if !session.Apply(req) {
		log.Ctx(ctx).Debug().Uint64("seq", req.Seq).Msg("dropping stale request")
		return nil
	}
	_ = h.sessions.Update(session)
	return h.respond(ctx, conn, session, req.Seq, false)
}

func decodeRequest(msg []byte) (api.LiveRequest, error) {
	var req api.LiveRequest
	if !gjson.ValidBytes(msg) {
		return req, ErrBadMessage.Suffix("invalid JSON")
	}
	if err := json.Unmarshal(msg, &req); err != nil {
		return req, ErrBadMessage.Suffix(err.Error())
	}
	if err := apis.ValidateCriteria(req.Criteria); err != nil {
		return req, err
	}
	return req, nil
}

func (h *Handler) respond(ctx context.Context, conn *websocket.Conn, session *Session, seq uint64, reloaded bool) error {
	catalog := h.backend.Catalog()
	rsp := &api.LiveResponse{
		Seq:         seq,
		Session:     session.ID,
		Fingerprint: catalog.Fingerprint(),
		Reloaded:    reloaded,
	}
	view, err := apis.BuildView(catalog, h.backend.Cache, session.Criteria, session.Selected)
	if err != nil {
		rsp.Error = err.Error()
	} else {
		rsp.View = view
	}
	if err := h.write(conn, rsp); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("live session write failed")
		return err
	}
	return nil
}

func (h *Handler) write(conn *websocket.Conn, rsp *api.LiveResponse) error {
	b, err := json.Marshal(rsp)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}

func gracefulCloseWithCode(ctx context.Context, conn *websocket.Conn, code int, reason string) error {
	if conn == nil {
		return nil
	}
	err := conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(1*time.Second),
	)
	_ = conn.Close()
	log.Ctx(ctx).Info().Msgf("live session closed with code %d: %s", code, reason)
	return err
}
