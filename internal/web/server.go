// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

// Package web serves the public HTTP surface: JSON endpoints under /api
// and server-rendered HTML pages.
package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/aweblog/aweblog/internal/auth"
	"github.com/aweblog/aweblog/internal/blog"
	"github.com/aweblog/aweblog/internal/observability"
)

// Authenticator covers the account operations the HTTP layer needs.
type Authenticator interface {
	Register(ctx context.Context, reg auth.Registration) (*auth.User, string, error)
	Authenticate(ctx context.Context, email, passwd string) (*auth.User, string, error)
}

// TokenDecoder resolves a session token into a redacted user.
type TokenDecoder interface {
	Decode(ctx context.Context, token string) (*auth.User, error)
}

// UserLister enumerates registered users, newest first.
type UserLister interface {
	List(ctx context.Context) ([]*auth.User, error)
}

// Blogger covers the entry operations the HTTP layer needs.
type Blogger interface {
	Create(ctx context.Context, author *auth.User, name, summary, content string) (*blog.Entry, error)
	Get(ctx context.Context, id string) (*blog.Entry, error)
	List(ctx context.Context, pageIndex int) (*blog.Listing, error)
}

// Deps bundles the services the web server routes to.
type Deps struct {
	Auth    Authenticator
	Tokens  TokenDecoder
	Users   UserLister
	Blogs   Blogger
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// middleware wraps a handler.
type middleware func(http.Handler) http.Handler

// Server is the public HTTP server. Create it with NewServer, then Start.
type Server struct {
	addr       string
	deps       Deps
	mux        *http.ServeMux
	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates a web server listening on addr once started.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Auth == nil || deps.Tokens == nil || deps.Users == nil || deps.Blogs == nil {
		return nil, oops.Code("WEB_DEPS_REQUIRED").Errorf("auth, token, user, and blog services are all required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	s := &Server{
		addr: addr,
		deps: deps,
		mux:  http.NewServeMux(),
	}
	s.mountRoutes()
	return s, nil
}

// Handler returns the fully routed handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.withIdentity(s.mux)
}

// Start begins serving. It returns an error channel that receives any error
// from the HTTP server after startup; the channel is closed on graceful stop.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("web server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.deps.Logger.Error("web server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.deps.Logger.Info("web server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the web server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_web_server").Wrap(err)
		}
	}

	s.deps.Logger.Info("web server stopped")
	return nil
}

// Addr returns the address the server is listening on, or "" if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// handle attaches a method-qualified route with optional middlewares. The
// ServeMux enforces the method guard and answers 405 with an Allow header
// for the rest.
func (s *Server) handle(method, pattern string, h http.HandlerFunc, mws ...middleware) {
	var handler http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}

	s.mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		handler.ServeHTTP(sw, r)
		if s.deps.Metrics != nil {
			s.deps.Metrics.RequestsTotal.WithLabelValues(pattern, strconv.Itoa(sw.status)).Inc()
		}
	})
}

// statusWriter records the status code written to the response.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}
