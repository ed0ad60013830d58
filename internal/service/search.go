package service

import (
	"log/slog"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/search"
	"inkwell/internal/store"
)

// SearchService routes queries between the full-text index and the
// substring fallback and reassembles ranked results.
type SearchService struct {
	articles *store.ArticleStore
	users    *store.UserStore
}

// NewSearchService wires a SearchService.
func NewSearchService(articles *store.ArticleStore, users *store.UserStore) *SearchService {
	return &SearchService{articles: articles, users: users}
}

// Search returns published articles matching the query, best match first.
// Queries under two characters return empty without touching any search
// path. The FTS path degrades to the substring fallback on error.
func (s *SearchService) Search(query string, limit int) ([]models.Article, error) {
	query = search.Normalize(query)
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var ids []uuid.UUID
	var err error
	switch search.Route(query) {
	case search.PathNone:
		return []models.Article{}, nil
	case search.PathSubstring:
		ids, err = s.articles.SearchSubstring(query, limit)
		if err != nil {
			return nil, err
		}
	case search.PathFullText:
		ids, err = s.articles.SearchFTS(query, limit)
		if err != nil {
			slog.Warn("fts search failed, falling back", "query", query, "error", err)
			ids, err = s.articles.SearchSubstring(query, limit)
			if err != nil {
				return nil, err
			}
		}
	}
	if len(ids) == 0 {
		return []models.Article{}, nil
	}

	articles, err := s.articles.FindManyWithAuthor(ids)
	if err != nil {
		return nil, err
	}

	// The join does not guarantee order; reimpose the rank order.
	byID := make(map[uuid.UUID]models.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}
	ordered := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

// Suggestions holds the typeahead results: article titles and author cards.
type Suggestions struct {
	Articles []store.SuggestTitle `json:"articles"`
	Users    []models.AuthorCard  `json:"users"`
}

// Suggest returns up to five article and five author suggestions for a
// query prefix. Short queries return empty suggestions.
func (s *SearchService) Suggest(query string) (*Suggestions, error) {
	out := &Suggestions{
		Articles: []store.SuggestTitle{},
		Users:    []models.AuthorCard{},
	}
	query = search.Normalize(query)
	if search.Route(query) == search.PathNone {
		return out, nil
	}

	articles, err := s.articles.SuggestArticles(query, 5)
	if err != nil {
		return nil, err
	}
	out.Articles = append(out.Articles, articles...)

	users, _, err := s.users.List(query, 5, 0)
	if err != nil {
		return nil, err
	}
	for i := range users {
		out.Users = append(out.Users, users[i].Card())
	}
	return out, nil
}
