// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aweblog Contributors

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aweblog/aweblog/internal/auth"
	"github.com/aweblog/aweblog/internal/blog"
	"github.com/aweblog/aweblog/pkg/errutil"
)

// errorBody is the JSON shape for all API failures.
type errorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // response write error means the client went away
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. Validation failures are
// 422, duplicate-resource conflicts 409, missing entries 404; anything else
// is a logged 500 with no internals leaked to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *auth.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:   "value:invalid",
			Field:   validation.Field,
			Message: validation.Message,
		})
		return
	}

	var conflict *auth.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, errorBody{
			Error:   "value:conflict",
			Field:   conflict.Field,
			Message: conflict.Message,
		})
		return
	}

	if errors.Is(err, blog.ErrNotFound) || errors.Is(err, auth.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{
			Error:   "not_found",
			Message: "resource not found",
		})
		return
	}

	errutil.LogError(s.deps.Logger.With("path", r.URL.Path), "request failed", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "internal",
		Message: "internal server error",
	})
}
