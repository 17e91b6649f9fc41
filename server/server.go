// Package server exposes the catalog over JSON HTTP routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/constant"
	"github.com/ghie29/avmango/log"
	"github.com/ghie29/avmango/playback"
	"github.com/ghie29/avmango/search"
	"github.com/ghie29/avmango/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"
)

// Latest is implemented by sources that can list their newest videos.
type Latest interface {
	Latest(ctx context.Context, limit int) ([]catalog.Video, error)
}

// Server serves the route surface.
type Server struct {
	registry *category.Registry
	resolver *playback.Resolver
	search   *search.Aggregator
	suggest  func(prefix string) []string

	homeLimit int
	views     *sessions
}

// Option configures a Server.
type Option func(*Server)

// WithHomeLimit sets how many videos the home listing shows.
func WithHomeLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.homeLimit = n
		}
	}
}

// WithViewTTL sets how long an idle view keeps its pagination state.
func WithViewTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.views.ttl = ttl
		}
	}
}

// WithMaxViews bounds how many views are kept. The least recently used view
// is dropped to make room for a new one.
func WithMaxViews(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.views.max = n
		}
	}
}

// WithSuggestions enables GET /suggest/{prefix}.
func WithSuggestions(suggest func(prefix string) []string) Option {
	return func(s *Server) { s.suggest = suggest }
}

// New creates a server over the registry's sources.
func New(registry *category.Registry, resolver *playback.Resolver, aggregator *search.Aggregator, opts ...Option) *Server {
	s := &Server{
		registry:  registry,
		resolver:  resolver,
		search:    aggregator,
		homeLimit: constant.HomeLimit,
		views:     newSessions(10*time.Minute, constant.MaxViews),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)

	r.Get("/", s.home)
	r.Get("/categories", s.categories)
	r.Get("/category/{name}", s.category)
	r.Get("/video/{id}", s.video)
	r.Get("/search/{term}", s.searchTerm)
	r.Get("/suggest/{prefix}", s.suggestions)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, fmt.Errorf("route %s: %w", r.URL.Path, catalog.ErrNotFound))
	})

	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	go s.reapLoop(ctx)

	errs := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		s.views.closeAll()
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.views.closeAll()
	if err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) reapLoop(ctx context.Context) {
	ticker := time.NewTicker(lo.Clamp(s.views.ttl/2, time.Second, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.views.reap()
		}
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	src, ok := s.registry.Home()
	if !ok {
		respond(w, http.StatusOK, &view.Home{Videos: []catalog.Video{}})
		return
	}

	videos, err := latest(r.Context(), src, s.homeLimit)
	if err != nil {
		fail(w, err)
		return
	}

	respond(w, http.StatusOK, &view.Home{Videos: lo.Ternary(videos == nil, []catalog.Video{}, videos)})
}

func latest(ctx context.Context, src catalog.Source, limit int) ([]catalog.Video, error) {
	if l, ok := src.(Latest); ok {
		return l.Latest(ctx, limit)
	}

	page, err := src.ListPage(ctx, 1)
	if err != nil {
		return nil, err
	}
	return lo.Subset(page.Items, 0, uint(limit)), nil
}

func (s *Server) categories(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, view.NewCategories(s.registry.All()))
}

func (s *Server) category(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, ok := s.registry.Get(name)
	if !ok {
		fail(w, fmt.Errorf("category %q: %w", name, catalog.ErrNotFound))
		return
	}

	target := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fail(w, fmt.Errorf("invalid page %q", raw))
			return
		}
		target = n
	}

	token, sess := s.views.acquire(r.URL.Query().Get("view"))
	rec := sess.rec

	current, loaded := rec.View()
	if !loaded || current.Category != c.Name() {
		var err error
		if current, err = rec.Load(r.Context(), c.Source); err != nil {
			fail(w, err)
			return
		}
	}

	if current.Cursor.UIPage != target {
		var err error
		if current, err = rec.Goto(r.Context(), target); err != nil {
			fail(w, err)
			return
		}
	}

	respond(w, http.StatusOK, view.NewListing(c, current, token))
}

func (s *Server) video(w http.ResponseWriter, r *http.Request) {
	result, err := s.resolver.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, view.NewVideo(result))
}

func (s *Server) searchTerm(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	results, err := s.search.Search(r.Context(), term)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, view.NewSearch(term, results))
}

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "prefix")

	var found []string
	if s.suggest != nil {
		found = s.suggest(prefix)
	}
	if found == nil {
		found = []string{}
	}

	respond(w, http.StatusOK, &view.Suggestions{Prefix: prefix, Suggestions: found})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := view.Write(w, body); err != nil {
		log.Warnf("write response: %s", err)
	}
}

func fail(w http.ResponseWriter, err error) {
	body := view.NewError(err)
	respond(w, statusOf(body.Kind), body)
}

func statusOf(kind string) int {
	switch kind {
	case view.KindNotFound:
		return http.StatusNotFound
	case view.KindSourceUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithFields(map[string]any{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
			"request":  middleware.GetReqID(r.Context()),
		}).Debugf("served")
	})
}
