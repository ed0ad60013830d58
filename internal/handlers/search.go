package handlers

import (
	"net/http"

	"inkwell/internal/service"
)

// Search groups the search endpoints.
type Search struct {
	search *service.SearchService
}

// NewSearch creates the search handler group.
func NewSearch(search *service.SearchService) *Search {
	return &Search{search: search}
}

// Query runs a full search over published articles.
func (h *Search) Query(w http.ResponseWriter, r *http.Request) {
	results, err := h.search.Search(r.URL.Query().Get("q"), queryInt(r, "limit", 20))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

// Suggest returns typeahead suggestions for titles and usernames.
func (h *Search) Suggest(w http.ResponseWriter, r *http.Request) {
	s, err := h.search.Suggest(r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}
