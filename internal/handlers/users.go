package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/chybatronik/goUserDirectory/internal/cache"
	"github.com/chybatronik/goUserDirectory/internal/database"
	"github.com/chybatronik/goUserDirectory/internal/logging"
	"github.com/chybatronik/goUserDirectory/internal/models"
	"github.com/chybatronik/goUserDirectory/internal/types"
	pkgerrors "github.com/chybatronik/goUserDirectory/pkg/errors"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DirectoryService defines the interface for directory store operations
type DirectoryService interface {
	ListUsers(ctx context.Context, pool *pgxpool.Pool, params types.ListUsersParams) ([]models.User, int64, error)
	SearchUsers(ctx context.Context, pool *pgxpool.Pool, params types.SearchUsersParams) ([]models.User, int64, int64, error)
	SoftDeleteUser(ctx context.Context, pool *pgxpool.Pool, id int64) (int64, error)
}

// DirectoryHandler handles HTTP requests for the user directory
type DirectoryHandler struct {
	pool    *pgxpool.Pool
	logger  *logging.Logger
	cache   *cache.ResponseCache
	service DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler instance
func NewDirectoryHandler(logger *logging.Logger, pool *pgxpool.Pool, responseCache *cache.ResponseCache, service DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		pool:    pool,
		logger:  logger,
		cache:   responseCache,
		service: service,
	}
}

// ListUsersResponse is the body of GET /users
type ListUsersResponse struct {
	Users    []models.User `json:"users"`
	Total    int64         `json:"total"`
	HasMore  bool          `json:"hasMore"`
	Cached   bool          `json:"cached"`
	LoadTime float64       `json:"loadTime"`
}

// parseListParams parses offset and limit from the query string. Missing,
// unparsable, or out-of-range values fall back to the defaults; the
// listing endpoint never rejects a pagination window.
func parseListParams(r *http.Request) types.ListUsersParams {
	params := types.ListUsersParams{
		Offset: types.DefaultOffset,
		Limit:  types.DefaultLimit,
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= types.MinLimit && limit <= types.MaxLimit {
			params.Limit = limit
		}
	}

	return params
}

// ListUsers handles GET /users: one page of active users with total count
// and hasMore flag, served read-through from the response cache.
func (h *DirectoryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger := h.logger.WithRequestID(requestID(r))

	if r.Method != http.MethodGet {
		logger.Warn("Invalid HTTP method for user listing", "method", r.Method)
		writeMethodNotAllowed(w, logger, http.MethodGet)
		return
	}

	params := parseListParams(r)
	key := cache.ListKey(params.Offset, params.Limit)

	if body, ok := h.cache.Get(key); ok {
		var cached ListUsersResponse
		if err := json.Unmarshal(body, &cached); err == nil {
			cached.Cached = true
			cached.LoadTime = loadTimeMs(start)
			logger.Cache("listing served from cache",
				logging.FieldCacheKey, key,
				"offset", params.Offset,
				"limit", params.Limit,
			)
			writeJSON(w, logger, http.StatusOK, cached)
			return
		}
		// Undecodable entry degrades to a miss; the fresh Put below
		// replaces it.
		logger.Warn("Discarding corrupt cache entry", logging.FieldCacheKey, key)
	}

	users, total, err := h.service.ListUsers(r.Context(), h.pool, params)
	if err != nil {
		logger.Error("Failed to retrieve users from store",
			logging.FieldError, err,
			"offset", params.Offset,
			"limit", params.Limit,
		)
		h.writeStoreError(w, logger, err, "Failed to fetch users")
		return
	}

	response := ListUsersResponse{
		Users:    users,
		Total:    total,
		HasMore:  int64(params.Offset+params.Limit) < total,
		Cached:   false,
		LoadTime: loadTimeMs(start),
	}

	if body, err := json.Marshal(response); err == nil {
		if err := h.cache.Put(key, body); err != nil {
			logger.Warn("Failed to write cache entry",
				logging.FieldCacheKey, key,
				logging.FieldError, err,
			)
		}
	}

	logger.Info("Users retrieved successfully",
		"user_count", len(users),
		"total", total,
		"offset", params.Offset,
		"limit", params.Limit,
		"has_more", response.HasMore,
	)

	writeJSON(w, logger, http.StatusOK, response)
}

// writeStoreError maps a store failure to its secure HTTP response. The
// user-facing error string is per-endpoint; the message detail stays
// generic regardless of the underlying cause.
func (h *DirectoryHandler) writeStoreError(w http.ResponseWriter, logger *logging.Logger, err error, errMsg string) {
	secureErr := database.MapStoreErrorSecure(err)
	status := http.StatusInternalServerError
	detail := "An internal error occurred."
	if dirErr, ok := pkgerrors.GetDirectoryError(secureErr); ok {
		status = dirErr.GetHTTPStatus()
		if status >= 500 {
			detail = dirErr.Message
		} else {
			detail = ""
		}
	}
	writeError(w, logger, status, errMsg, detail)
}
