package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medialib/internal/model"
	"medialib/internal/search"
	"medialib/internal/session"
)

// session resolves the caller's session from the cookie, issuing a fresh
// token when needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var token string
	if c, err := r.Cookie(sessionCookie); err == nil {
		token = c.Value
	}
	sess, newToken := s.sessions.Get(token)
	if newToken != token {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    newToken,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// requireLogin gates the browse surface. The /share path deliberately does
// not pass through here.
func (s *Server) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.session(w, r)
		if !s.sessions.Authenticated(sess) {
			http.Error(w, "Login required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	if err := s.sessions.Login(sess, req.Password); err != nil {
		if errors.Is(err, session.ErrAuthMismatch) {
			http.Error(w, "Wrong password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}
	s.respondJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.sessions.Logout(sess)
	s.respondJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	mediaType := r.URL.Query().Get("type")

	sess := s.session(w, r)
	// Changing the query resets pagination so a new filter never starts
	// with a previously expanded window.
	s.sessions.SetQuery(sess, q)

	results := search.Filter(s.loader.Entries(r.Context()), q, category, mediaType)
	if results == nil {
		results = []model.CatalogEntry{}
	}

	revealed := sess.Revealed()
	if revealed > len(results) {
		revealed = len(results)
	}

	s.respondJSON(w, map[string]interface{}{
		"entries":  results[:revealed],
		"total":    len(results),
		"revealed": revealed,
	})
}

func (s *Server) handleMore(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	revealed := s.sessions.ExpandPage(sess)
	s.respondJSON(w, map[string]int{"revealed": revealed})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, map[string]interface{}{
		"categories": s.loader.Categories(r.Context()),
	})
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loader.ByID(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	s.respondJSON(w, s.builder.Build(entry))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loader.ByID(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	s.respondJSON(w, s.previewer.Preview(r.Context(), entry, model.AudienceInternal))
}

// handleShare serves external single-record access. It never touches login
// state and never exposes the catalog list. An unknown id, whether malformed
// or simply absent, gets the same uniform answer.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.loader.ByID(r.Context(), r.URL.Query().Get("id"))
	if !ok {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	result := s.previewer.Preview(r.Context(), entry, model.AudienceExternal)
	resp := map[string]interface{}{"preview": result}
	if result.Outcome != model.OutcomeRefused {
		resp["title"] = entry.Title
		resp["short_label"] = entry.ShortLabel
	}
	s.respondJSON(w, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshed := s.loader.Refresh(r.Context())
	s.respondJSON(w, map[string]interface{}{
		"refreshed": refreshed,
		"entries":   len(s.loader.Entries(r.Context())),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Encode error", http.StatusInternalServerError)
	}
}
