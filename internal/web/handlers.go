// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aweblog/aweblog/internal/auth"
)

// pageIndex parses the ?page query parameter the forgiving way: anything
// that is not a positive integer means page 1.
func pageIndex(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close() //nolint:errcheck // nothing useful to do with a body close error
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &auth.ValidationError{Field: "body", Message: "malformed request body"}
	}
	return nil
}

// handleRegisterUser creates an account and signs the new user in.
//
//	POST /api/users {"email": ..., "name": ..., "passwd": <40-hex sha1>}
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var reg auth.Registration
	if err := decodeBody(r, &reg); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, token, err := s.deps.Auth.Register(r.Context(), reg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, user)
}

// handleAuthenticate verifies credentials and sets the session cookie.
//
//	POST /api/authenticate {"email": ..., "passwd": <40-hex sha1>}
func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email  string `json:"email"`
		Passwd string `json:"passwd"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, token, err := s.deps.Auth.Authenticate(r.Context(), req.Email, req.Passwd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, user)
}

// handleListUsers returns all users, newest first, digests redacted.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	redacted := make([]*auth.User, len(users))
	for i, u := range users {
		redacted[i] = u.Redacted()
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": redacted})
}

// handleCreateBlog stores a new entry authored by the signed-in user.
func (s *Server) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Summary string `json:"summary"`
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, err := s.deps.Blogs.Create(r.Context(), currentUser(r.Context()), req.Name, req.Summary, req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleListBlogs returns one page of entries with its pagination window.
func (s *Server) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	listing, err := s.deps.Blogs.List(r.Context(), pageIndex(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// handleGetBlog returns a single entry by id.
func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	entry, err := s.deps.Blogs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleSignout clears the session cookie and sends the browser home.
func (s *Server) handleSignout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
