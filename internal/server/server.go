// Package server provides the HTTP server and handlers.
package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"medialib/internal/catalog"
	"medialib/internal/config"
	"medialib/internal/fetchcache"
	"medialib/internal/preview"
	"medialib/internal/session"
	"medialib/internal/share"
	"medialib/internal/store"
)

const sessionCookie = "medialib_session"

// janitorInterval bounds fetch-cache memory between purges.
const janitorInterval = 10 * time.Minute

// Server is the main HTTP server.
type Server struct {
	cfg       config.Config
	loader    *catalog.Loader
	sessions  *session.Manager
	previewer *preview.Previewer
	builder   *share.Builder
	cache     *fetchcache.Cache
	router    chi.Router

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New wires the catalog, caches and session manager behind the router.
func New(cfg config.Config, st store.Store) *Server {
	cache := fetchcache.New(cfg.AudioTTL(), cfg.FetchTimeout())
	s := &Server{
		cfg:       cfg,
		loader:    catalog.New(cfg.FeedURL, cfg.CatalogTTL(), cfg.FetchTimeout(), st),
		sessions:  session.NewManager(cfg.Password, cfg.SessionTimeout(), cfg.PageSize, cfg.PageIncrement),
		previewer: preview.New(cache),
		builder:   share.NewBuilder(cfg.BaseURL),
		cache:     cache,
		stopChan:  make(chan struct{}),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Unauthenticated single-record share access.
	r.Get("/share", s.handleShare)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireLogin)
			r.Get("/entries", s.handleEntries)
			r.Post("/entries/more", s.handleMore)
			r.Get("/entries/{id}/links", s.handleLinks)
			r.Get("/entries/{id}/preview", s.handlePreview)
			r.Get("/categories", s.handleCategories)
			r.Post("/refresh", s.handleRefresh)
		})
	})

	s.router = r
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server and the cache janitor.
func (s *Server) Start(addr string) error {
	s.startJanitor()
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Stop stops the janitor.
func (s *Server) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// startJanitor periodically drops expired fetch-cache entries. Eviction is
// otherwise lazy, so this only bounds memory.
func (s *Server) startJanitor() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.stopChan:
				return
			case <-time.After(janitorInterval):
				if removed := s.cache.Purge(); removed > 0 {
					log.Printf("janitor: purged %d expired cache entries", removed)
				}
			}
		}
	}()
}
