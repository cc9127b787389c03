// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package web

// mountRoutes binds all public endpoints onto the Server's mux.
func (s *Server) mountRoutes() {
	// --- JSON API ---
	s.handle("POST", "/api/users", s.handleRegisterUser)
	s.handle("GET", "/api/users", s.handleListUsers)
	s.handle("POST", "/api/authenticate", s.handleAuthenticate)
	s.handle("POST", "/api/blogs", s.handleCreateBlog, s.requireUser())
	s.handle("GET", "/api/blogs", s.handleListBlogs)
	s.handle("GET", "/api/blogs/{id}", s.handleGetBlog)

	// --- HTML pages ---
	s.handle("GET", "/{$}", s.handleIndexPage)
	s.handle("GET", "/register", s.handleRegisterPage)
	s.handle("GET", "/signin", s.handleSigninPage)
	s.handle("GET", "/signout", s.handleSignout)
	s.handle("GET", "/manage/blogs", s.handleManageBlogsPage, s.requireUser())
	s.handle("GET", "/manage/blogs/create", s.handleCreateBlogPage, s.requireUser())
}
