// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/aweblog/aweblog/internal/auth"
)

type contextKey string

const userContextKey contextKey = "aweblog.user"

// currentUser returns the identity resolved by withIdentity, or nil for an
// anonymous request.
func currentUser(ctx context.Context) *auth.User {
	user, _ := ctx.Value(userContextKey).(*auth.User)
	return user
}

// withIdentity resolves the session cookie into a user exactly once per
// request and stores it in the context. An invalid or absent cookie leaves
// the request anonymous; the token codec handles its own audit logging.
func (s *Server) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := s.deps.Tokens.Decode(r.Context(), cookie.Value)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser rejects anonymous requests. API routes get a JSON 401; page
// routes redirect to the sign-in form.
func (s *Server) requireUser() middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if currentUser(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/api/") {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"error":   "unauthorized",
					"message": "sign in required",
				})
				return
			}
			http.Redirect(w, r, "/signin", http.StatusFound)
		})
	}
}
