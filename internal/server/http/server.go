package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/NEARFoundation/events-platform/internal/auth"
	"github.com/NEARFoundation/events-platform/internal/runtime"
	"github.com/NEARFoundation/events-platform/internal/server/http/controllers"
	eventlistsvc "github.com/NEARFoundation/events-platform/internal/services/eventlists"
	eventsvc "github.com/NEARFoundation/events-platform/internal/services/events"
	logpkg "github.com/NEARFoundation/events-platform/pkg/log"
)

// Server is the HTTP API surface: the sole integration point for the
// presentation layer.
type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

// New builds the server with its services and routes.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	if logger == nil {
		logger = rt.Logger().With(logpkg.Component("http"))
	}
	verifier := auth.NewHMAC(rt.Config().JWTSecret)
	registry := controllers.NewControllerRegistry(rt,
		eventsvc.NewWithLogger(rt, logger.With(logpkg.Component("events"))),
		eventlistsvc.NewWithLogger(rt, logger.With(logpkg.Component("eventlists"))),
		verifier,
	)
	mux := http.NewServeMux()
	registry.RegisterAllRoutes(mux)
	return &Server{rt: rt, srv: &http.Server{Handler: cors(mux)}, logger: logger}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http server listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
