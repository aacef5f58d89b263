package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/chybatronik/goUserDirectory/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSearchResponse(t *testing.T, w *httptest.ResponseRecorder) SearchUsersResponse {
	t.Helper()
	var resp SearchUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func searchRequest(q string) *http.Request {
	return httptest.NewRequest("GET", "/search?q="+url.QueryEscape(q), nil)
}

func TestSearchUsers_MissingQuery(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, httptest.NewRequest("GET", "/search", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, `"q"`)
	assert.Equal(t, 0, svc.searchCalls)
}

func TestSearchUsers_EmptyQueryAfterTrim(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	for _, q := range []string{"", "   ", "\t\n", `<>"'&`} {
		w := httptest.NewRecorder()
		handler.SearchUsers(w, searchRequest(q))

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", q)
	}
	assert.Equal(t, 0, svc.searchCalls)
}

func TestSearchUsers_MatchesAreCaseInsensitive(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, searchRequest("ZOE"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSearchResponse(t, w)

	require.NotEmpty(t, resp.Users)
	for _, u := range resp.Users {
		full := strings.ToLower(u.Fname + " " + u.Lname)
		assert.Contains(t, full, "zoe")
	}
	assert.Equal(t, int64(5), resp.Total)
}

func TestSearchUsers_ResultCap(t *testing.T) {
	// Every test user shares the same last name, so all 20 match.
	svc := &mockDirectoryService{users: testUsers(20)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, searchRequest("smith"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSearchResponse(t, w)

	assert.Len(t, resp.Users, types.SearchResultCap)
	assert.Equal(t, int64(20), resp.MatchTotal)
	assert.GreaterOrEqual(t, resp.MatchTotal, int64(len(resp.Users)))
	assert.Equal(t, int64(20), resp.Total)
}

func TestSearchUsers_ZeroMatchesIsNotAnError(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, searchRequest("zzzqqqnotfound"))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeSearchResponse(t, w)

	assert.NotNil(t, resp.Users)
	assert.Empty(t, resp.Users)
	assert.Equal(t, int64(0), resp.MatchTotal)
	assert.Equal(t, int64(5), resp.Total)
	assert.Contains(t, w.Body.String(), `"users":[]`)
}

func TestSearchUsers_SecondRequestServedFromCache(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	w1 := httptest.NewRecorder()
	handler.SearchUsers(w1, searchRequest("zoe"))
	require.Equal(t, http.StatusOK, w1.Code)
	first := decodeSearchResponse(t, w1)
	assert.False(t, first.Cached)

	w2 := httptest.NewRecorder()
	handler.SearchUsers(w2, searchRequest("zoe"))
	require.Equal(t, http.StatusOK, w2.Code)
	second := decodeSearchResponse(t, w2)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Users, second.Users)
	assert.Equal(t, first.MatchTotal, second.MatchTotal)
	assert.Equal(t, 1, svc.searchCalls)
}

func TestSearchUsers_CacheKeyIgnoresCase(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, searchRequest("zoe"))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.SearchUsers(w, searchRequest("ZOE"))
	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, decodeSearchResponse(t, w).Cached)
	assert.Equal(t, 1, svc.searchCalls)
}

func TestSearchUsers_LongQueryTruncated(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, searchRequest(strings.Repeat("z", 500)))

	// Truncation happens before the query; an over-long term is not an error.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.searchCalls)
}

func TestSearchUsers_StoreFailure(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5), failSearch: true}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, searchRequest("zoe"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Search failed", resp.Error)
}

func TestSearchUsers_MethodNotAllowed(t *testing.T) {
	svc := &mockDirectoryService{users: testUsers(5)}
	handler, _ := newTestHandler(t, svc)

	w := httptest.NewRecorder()
	handler.SearchUsers(w, httptest.NewRequest("POST", "/search?q=zoe", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET", w.Header().Get("Allow"))
}
