package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chybatronik/goUserDirectory/internal/cache"
	"github.com/chybatronik/goUserDirectory/internal/database"
	"github.com/chybatronik/goUserDirectory/internal/logging"
	"github.com/chybatronik/goUserDirectory/internal/models"
	"github.com/chybatronik/goUserDirectory/internal/types"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDirectoryService is an in-memory stand-in for the database package.
// It applies the same windowing, search, and soft-delete semantics the
// store does, so handler tests exercise the full request contract.
type mockDirectoryService struct {
	mu          sync.Mutex
	users       []models.User
	failList    bool
	failSearch  bool
	failDelete  bool
	listCalls   int
	searchCalls int
}

func (m *mockDirectoryService) activeUsers() []models.User {
	var active []models.User
	for _, u := range m.users {
		if u.Status == models.StatusActive {
			active = append(active, u)
		}
	}
	return active
}

func (m *mockDirectoryService) ListUsers(ctx context.Context, pool *pgxpool.Pool, params types.ListUsersParams) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls++
	if m.failList {
		return nil, 0, assert.AnError
	}

	active := m.activeUsers()
	total := int64(len(active))

	start := params.Offset
	if start > len(active) {
		start = len(active)
	}
	end := start + params.Limit
	if end > len(active) {
		end = len(active)
	}

	page := make([]models.User, 0, end-start)
	page = append(page, active[start:end]...)
	return page, total, nil
}

func (m *mockDirectoryService) SearchUsers(ctx context.Context, pool *pgxpool.Pool, params types.SearchUsersParams) ([]models.User, int64, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.searchCalls++
	if m.failSearch {
		return nil, 0, 0, assert.AnError
	}

	term := strings.ToLower(params.Term)
	active := m.activeUsers()

	matches := []models.User{}
	for _, u := range active {
		full := strings.ToLower(u.Fname + " " + u.Lname)
		if strings.Contains(strings.ToLower(u.Fname), term) ||
			strings.Contains(strings.ToLower(u.Lname), term) ||
			strings.Contains(full, term) {
			matches = append(matches, u)
		}
	}

	matchTotal := int64(len(matches))
	if len(matches) > types.SearchResultCap {
		matches = matches[:types.SearchResultCap]
	}

	return matches, matchTotal, int64(len(active)), nil
}

func (m *mockDirectoryService) SoftDeleteUser(ctx context.Context, pool *pgxpool.Pool, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failDelete {
		return 0, assert.AnError
	}

	for i := range m.users {
		if m.users[i].ID != id {
			continue
		}
		if m.users[i].Status == models.StatusDeleted {
			return 0, database.ErrUserAlreadyDeleted
		}
		m.users[i].Status = models.StatusDeleted
		return int64(len(m.activeUsers())), nil
	}

	return 0, database.ErrUserNotFound
}

func testUsers(n int) []models.User {
	names := []string{"Zoe", "Yuri", "Xena", "Walt", "Vera", "Umar", "Tess", "Sam", "Rita", "Quin"}
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, models.User{
			ID:        int64(i + 1),
			Fname:     names[i%len(names)],
			Lname:     "Smith",
			Email:     strings.ToLower(names[i%len(names)]) + "@example.com",
			Review:    "ok",
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Status:    models.StatusActive,
		})
	}
	return users
}

func newTestHandler(t *testing.T, svc DirectoryService) (*DirectoryHandler, *cache.ResponseCache) {
	t.Helper()

	responseCache, err := cache.New(t.TempDir(), time.Minute)
	require.NoError(t, err)

	logger := logging.NewStructuredLogger("error", "json", "goUserDirectory", "test")
	return NewDirectoryHandler(logger, nil, responseCache, svc), responseCache
}

func decodeListResponse(t *testing.T, w *httptest.ResponseRecorder) ListUsersResponse {
	t.Helper()
	var resp ListUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListUsers_Defaults(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(25)}
	handler, _ := newTestHandler(t, svc)

	req := httptest.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()

	handler.ListUsers(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeListResponse(t, w)

	assert.Len(t, resp.Users, types.DefaultLimit)
	assert.Equal(t, int64(25), resp.Total)
	assert.True(t, resp.HasMore)
	assert.False(t, resp.Cached)
	assert.GreaterOrEqual(t, resp.LoadTime, 0.0)
}

func TestListUsers_InvalidParamsFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric offset", "?offset=abc&limit=5x"},
		{"negative offset", "?offset=-3"},
		{"zero limit", "?limit=0"},
		{"limit above cap", "?limit=500"},
		{"empty values", "?offset=&limit="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockDirectoryService{users: testUsers(25)}
			handler, _ := newTestHandler(t, svc)

			req := httptest.NewRequest("GET", "/users"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ListUsers(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			resp := decodeListResponse(t, w)
			assert.Len(t, resp.Users, types.DefaultLimit)
		})
	}
}

func TestListUsers_PaginationWindow(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(7)}
	handler, _ := newTestHandler(t, svc)

	req := httptest.NewRequest("GET", "/users?offset=0&limit=5", nil)
	w := httptest.NewRecorder()
	handler.ListUsers(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeListResponse(t, w)
	assert.Len(t, resp.Users, 5)
	assert.Equal(t, int64(7), resp.Total)
	assert.True(t, resp.HasMore)

	req = httptest.NewRequest("GET", "/users?offset=5&limit=5", nil)
	w = httptest.NewRecorder()
	handler.ListUsers(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeListResponse(t, w)
	assert.Len(t, resp.Users, 2)
	assert.False(t, resp.HasMore)
}

func TestListUsers_OffsetPastEnd(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(3)}
	handler, _ := newTestHandler(t, svc)

	req := httptest.NewRequest("GET", "/users?offset=40&limit=10", nil)
	w := httptest.NewRecorder()

	handler.ListUsers(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeListResponse(t, w)
	assert.Empty(t, resp.Users)
	assert.Equal(t, int64(3), resp.Total)
	assert.False(t, resp.HasMore)
}

func TestListUsers_SecondRequestServedFromCache(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(12)}
	handler, _ := newTestHandler(t, svc)

	req := httptest.NewRequest("GET", "/users?offset=0&limit=10", nil)
	w1 := httptest.NewRecorder()
	handler.ListUsers(w1, req)
	require.Equal(t, http.StatusOK, w1.Code)
	first := decodeListResponse(t, w1)
	assert.False(t, first.Cached)

	w2 := httptest.NewRecorder()
	handler.ListUsers(w2, httptest.NewRequest("GET", "/users?offset=0&limit=10", nil))
	require.Equal(t, http.StatusOK, w2.Code)
	second := decodeListResponse(t, w2)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Users, second.Users)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.HasMore, second.HasMore)
	assert.Equal(t, 1, svc.listCalls)
}

func TestListUsers_DistinctWindowsDistinctCacheSlots(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(25)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.ListUsers(w, httptest.NewRequest("GET", "/users?offset=0&limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ListUsers(w, httptest.NewRequest("GET", "/users?offset=10&limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.False(t, decodeListResponse(t, w).Cached)
	assert.Equal(t, 2, svc.listCalls)
}

func TestListUsers_StoreFailure(t *testing.T) {
	svc := &mockDirectoryService{failList: true}
	handler, _ := newTestHandler(t, svc)

	req := httptest.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()

	handler.ListUsers(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to fetch users", resp.Error)
	assert.Equal(t, "An internal error occurred.", resp.Message)
}

func TestListUsers_MethodNotAllowed(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(3)}
	handler, _ := newTestHandler(t, svc)

	for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
		req := httptest.NewRequest(method, "/users", nil)
		w := httptest.NewRecorder()

		handler.ListUsers(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "method %s", method)
		assert.Equal(t, "GET", w.Header().Get("Allow"))
	}
}

func TestListUsers_EmptyDirectory(t *testing.T) {
	svc := &mockDirectoryService{}
	handler, _ := newTestHandler(t, svc)

	req := httptest.NewRequest("GET", "/users", nil)
	w := httptest.NewRecorder()

	handler.ListUsers(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeListResponse(t, w)
	assert.NotNil(t, resp.Users)
	assert.Empty(t, resp.Users)
	assert.Equal(t, int64(0), resp.Total)
	assert.False(t, resp.HasMore)

	// The encoded body must carry an array, not null.
	assert.Contains(t, w.Body.String(), `"users":[]`)
}
