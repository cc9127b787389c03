// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/aweblog/aweblog/internal/auth"
	"github.com/aweblog/aweblog/internal/blog"
	"github.com/aweblog/aweblog/pkg/errutil"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Format("January 2, 2006 15:04")
	},
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
}

// pages maps a page name to its parsed template. Each page defines a
// "content" block rendered inside the shared layout.
var pages = func() map[string]*template.Template {
	names := []string{"blogs", "register", "signin", "manage_blogs", "manage_blog_edit"}
	m := make(map[string]*template.Template, len(names))
	for _, name := range names {
		m[name] = template.Must(template.New("layout.html").Funcs(pageFuncs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return m
}()

// pageData is the model every page template renders against. User is nil
// for anonymous visitors.
type pageData struct {
	Title   string
	User    *auth.User
	Listing *blog.Listing
	Action  string
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data.User == nil {
		if user := currentUser(r.Context()); user != nil {
			data.User = user
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages[name].Execute(w, data); err != nil {
		errutil.LogError(s.deps.Logger.With("page", name), "render failed", err)
	}
}

// handleIndexPage renders the landing page with the first page of entries.
func (s *Server) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	listing, err := s.deps.Blogs.List(r.Context(), pageIndex(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.renderPage(w, r, "blogs", pageData{Title: "Aweblog", Listing: listing})
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "register", pageData{Title: "Register"})
}

func (s *Server) handleSigninPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "signin", pageData{Title: "Sign In"})
}

func (s *Server) handleManageBlogsPage(w http.ResponseWriter, r *http.Request) {
	listing, err := s.deps.Blogs.List(r.Context(), pageIndex(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.renderPage(w, r, "manage_blogs", pageData{Title: "Manage Blogs", Listing: listing})
}

func (s *Server) handleCreateBlogPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, "manage_blog_edit", pageData{Title: "New Blog", Action: "/api/blogs"})
}
