package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKey_Deterministic(t *testing.T) {
	assert.Equal(t, ListKey(0, 10), ListKey(0, 10))
	assert.Equal(t, "users:offset=0:limit=10", ListKey(0, 10))
}

func TestListKey_DistinctWindows(t *testing.T) {
	assert.NotEqual(t, ListKey(0, 10), ListKey(10, 10))
	assert.NotEqual(t, ListKey(0, 10), ListKey(0, 20))
}

func TestSearchKey_CaseInsensitive(t *testing.T) {
	assert.Equal(t, SearchKey("Smith"), SearchKey("smith"))
	assert.Equal(t, SearchKey("SMITH"), SearchKey("smith"))
}

func TestSearchKey_DistinctTerms(t *testing.T) {
	assert.NotEqual(t, SearchKey("smith"), SearchKey("smyth"))
}

func TestHashKey_FilesystemSafe(t *testing.T) {
	name := hashKey(SearchKey("term with spaces / and : punctuation"))

	assert.Regexp(t, `^[0-9a-f]{16}\.json$`, name)
}

func TestHashKey_DistinctKeys(t *testing.T) {
	assert.NotEqual(t, hashKey(ListKey(0, 10)), hashKey(SearchKey("smith")))
}
