package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chybatronik/goUserDirectory/internal/cache"
	"github.com/chybatronik/goUserDirectory/internal/logging"
	"github.com/chybatronik/goUserDirectory/internal/models"
	"github.com/chybatronik/goUserDirectory/internal/types"
	"github.com/chybatronik/goUserDirectory/internal/validation"
)

// SearchUsersResponse is the body of GET /search. Users holds at most
// types.SearchResultCap rows; MatchTotal counts every matching active
// record and Total counts all active records regardless of the term.
type SearchUsersResponse struct {
	Users      []models.User `json:"users"`
	MatchTotal int64         `json:"matchTotal"`
	Total      int64         `json:"total"`
	Cached     bool          `json:"cached"`
	LoadTime   float64       `json:"loadTime"`
}

// SearchUsers handles GET /search: case-insensitive substring search over
// first and last names of active users, read-through cached.
func (h *DirectoryHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := h.logger.WithRequestID(requestID(r))

	if r.Method != http.MethodGet {
		logger.Warn("Invalid HTTP method for search", "method", r.Method)
		writeMethodNotAllowed(w, logger, http.MethodGet)
		return
	}

	term := validation.SanitizeSearchTerm(r.URL.Query().Get("q"))
	if term == "" {
		logger.Warn("Search request missing query parameter")
		writeError(w, logger, http.StatusBadRequest,
			`Search query parameter "q" is required.`, "")
		return
	}

	key := cache.SearchKey(term)

	if body, ok := h.cache.Get(key); ok {
		var cached SearchUsersResponse
		if err := json.Unmarshal(body, &cached); err == nil {
			cached.Cached = true
			cached.LoadTime = loadTimeMs(start)
			logger.Cache("search served from cache", logging.FieldCacheKey, key)
			writeJSON(w, logger, http.StatusOK, cached)
			return
		}
		logger.Warn("Discarding corrupt cache entry", logging.FieldCacheKey, key)
	}

	users, matchTotal, total, err := h.service.SearchUsers(r.Context(), h.pool, types.SearchUsersParams{Term: term})
	if err != nil {
		logger.Error("Search query failed",
			logging.FieldError, err,
			"term_length", len(term),
		)
		h.writeStoreError(w, logger, err, "Search failed")
		return
	}

	response := SearchUsersResponse{
		Users:      users,
		MatchTotal: matchTotal,
		Total:      total,
		Cached:     false,
		LoadTime:   loadTimeMs(start),
	}

	if body, err := json.Marshal(response); err == nil {
		if err := h.cache.Put(key, body); err != nil {
			logger.Warn("Failed to write cache entry",
				logging.FieldCacheKey, key,
				logging.FieldError, err,
			)
		}
	}

	logger.Info("Search completed",
		"result_count", len(users),
		"match_total", matchTotal,
		"total", total,
	)

	writeJSON(w, logger, http.StatusOK, response)
}
