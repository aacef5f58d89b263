package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/chybatronik/goUserDirectory/internal/database"
	"github.com/chybatronik/goUserDirectory/internal/logging"
)

// DeleteUserRequest is the JSON body of POST /delete
type DeleteUserRequest struct {
	ID int64 `json:"id"`
}

// DeleteUserResponse is the success body of POST /delete
type DeleteUserResponse struct {
	Success bool   `json:"success"`
	Total   int64  `json:"total"`
	Message string `json:"message"`
}

// DeleteUser handles POST /delete: soft-deletes a user via an atomic
// conditional status update, then wipes the entire response cache so no
// cached listing or search can keep serving the removed record. On any
// failure the record and the cache are left untouched.
func (h *DirectoryHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.WithRequestID(requestID(r))

	if r.Method != http.MethodPost {
		logger.Warn("Invalid HTTP method for delete", "method", r.Method)
		writeMethodNotAllowed(w, logger, http.MethodPost)
		return
	}

	req, err := parseDeleteRequest(r)
	if err != nil {
		logger.Warn("Failed to parse delete request", logging.FieldError, err)
		if errors.Is(err, errInvalidID) {
			writeError(w, logger, http.StatusBadRequest,
				"Invalid user ID. Must be a positive integer.", "")
		} else {
			writeError(w, logger, http.StatusBadRequest,
				`Invalid request. JSON body with "id" required.`, "")
		}
		return
	}

	if req.ID < 1 {
		logger.Warn("Delete request with non-positive id", "id", req.ID)
		writeError(w, logger, http.StatusBadRequest,
			"Invalid user ID. Must be a positive integer.", "")
		return
	}

	total, err := h.service.SoftDeleteUser(r.Context(), h.pool, req.ID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrUserNotFound):
			logger.Info("Delete target not found", "id", req.ID)
			writeError(w, logger, http.StatusNotFound, "User not found.", "")
		case errors.Is(err, database.ErrUserAlreadyDeleted):
			logger.Info("Delete target already deleted", "id", req.ID)
			writeError(w, logger, http.StatusConflict, "User already deleted.", "")
		default:
			logger.Error("Failed to delete user", logging.FieldError, err, "id", req.ID)
			h.writeStoreError(w, logger, err, "Failed to delete user")
		}
		return
	}

	if err := h.cache.InvalidateAll(); err != nil {
		// The delete itself committed; a leftover entry ages out via TTL.
		logger.Warn("Cache invalidation incomplete after delete",
			logging.FieldError, err,
			"id", req.ID,
		)
	}

	logger.Info("User deleted successfully",
		"id", req.ID,
		"total", total,
	)

	writeJSON(w, logger, http.StatusOK, DeleteUserResponse{
		Success: true,
		Total:   total,
		Message: "User deleted successfully.",
	})
}

// errInvalidID marks a body whose id field is present but not an integer.
var errInvalidID = errors.New(`"id" must be an integer`)

// parseDeleteRequest reads and decodes the delete body. The id field must
// be present as a JSON number; anything else is a validation failure.
func parseDeleteRequest(r *http.Request) (*DeleteUserRequest, error) {
	if r.Body == nil {
		return nil, errors.New("request body is empty")
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, 1048576))
	if err != nil {
		return nil, errors.New("failed to read request body")
	}
	if len(body) == 0 {
		return nil, errors.New("request body is empty")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.New("invalid JSON body")
	}

	idRaw, ok := raw["id"]
	if !ok {
		return nil, errors.New(`missing "id" field`)
	}

	var req DeleteUserRequest
	if err := json.Unmarshal(idRaw, &req.ID); err != nil {
		return nil, errInvalidID
	}

	return &req, nil
}
