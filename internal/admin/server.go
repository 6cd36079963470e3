package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"asteroid-tracker/internal/body"
	"asteroid-tracker/internal/metrics"
	"asteroid-tracker/internal/tracker"
)

// Session is the part of a tracking session the admin surface reads and
// drives.
type Session interface {
	Snapshot() []body.State
	Mode() tracker.ScaleMode
	ToggleScale() tracker.ScaleMode
}

// Frame is one status message: the JSON body of /bodies and of each
// websocket message.
type Frame struct {
	SessionID string       `json:"session_id"`
	ScaleMode string       `json:"scale_mode"`
	Bodies    []body.State `json:"bodies"`
}

type Server struct {
	sessionID      string
	session        Session
	metrics        *metrics.Collector
	streamInterval time.Duration
	tpl            *template.Template
	upgrader       websocket.Upgrader
	log            *slog.Logger
}

//go:embed templates/index.html
var content embed.FS

const writeWait = 5 * time.Second

// NewServer builds the admin server. streamInterval paces /ws snapshots.
func NewServer(sessionID string, session Session, m *metrics.Collector, streamInterval time.Duration) *Server {
	if streamInterval <= 0 {
		streamInterval = time.Second
	}
	tpl := template.Must(template.New("index.html").Funcs(template.FuncMap{
		"deref": func(v *float64) any {
			if v == nil {
				return "No data"
			}
			return *v
		},
	}).ParseFS(content, "templates/index.html"))
	return &Server{
		sessionID:      sessionID,
		session:        session,
		metrics:        m,
		streamInterval: streamInterval,
		tpl:            tpl,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: slog.Default(),
	}
}

// Routes returns the admin router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/bodies", s.handleBodies)
	r.Post("/toggle-scale", s.handleToggleScale)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/ws", s.handleStream)
	return r
}

// Start serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Routes(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info("admin server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) frame() Frame {
	return Frame{
		SessionID: s.sessionID,
		ScaleMode: s.session.Mode().String(),
		Bodies:    s.session.Snapshot(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, s.frame()); err != nil {
		s.log.Error("render index", "err", err)
	}
}

func (s *Server) handleBodies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.frame())
}

func (s *Server) handleToggleScale(w http.ResponseWriter, r *http.Request) {
	mode := s.session.ToggleScale()
	s.writeJSON(w, map[string]string{"scale_mode": mode.String()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// handleStream pushes a frame immediately and then once per stream interval
// until the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()
	for {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(s.frame()); err != nil {
			s.log.Debug("websocket write failed", "err", err)
			return
		}
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case <-ticker.C:
		}
	}
}
