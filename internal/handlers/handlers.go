// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the Inkwell API.
// Handlers are grouped by concern (auth, articles, social, moderation, ...)
// and receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"inkwell/internal/apperr"
)

// validate holds the shared request validator. Struct tags on the request
// DTOs drive it.
var validate = validator.New()

const maxRequestBody = 1 << 20 // 1 MiB JSON bodies

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response", "error", err)
		}
	}
}

// respondError maps a service error to an HTTP status. Unknown errors are
// logged and reduced to a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if kind, ok := apperr.KindOf(err); ok {
		status := http.StatusInternalServerError
		switch kind {
		case apperr.KindValidation:
			status = http.StatusUnprocessableEntity
		case apperr.KindAuthorization:
			status = http.StatusForbidden
		case apperr.KindNotFound:
			status = http.StatusNotFound
		case apperr.KindConflict:
			status = http.StatusConflict
		}
		respondJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// decodeJSON reads and validates a JSON request body into dst. A false
// return means the error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
				"error": "invalid field " + verrs[0].Field(),
			})
			return false
		}
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid request"})
		return false
	}
	return true
}

// uuidParam parses a UUID path parameter. A false return means the error
// response has already been written.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": name + " is not a valid id"})
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an integer query parameter, falling back on absence or
// garbage.
func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
