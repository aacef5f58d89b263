// Package types provides shared types for the goUserDirectory service
package types

// Pagination defaults and bounds for the listing endpoint. Out-of-range or
// unparsable values fall back to the defaults instead of erroring.
const (
	DefaultOffset = 0
	DefaultLimit  = 10
	MinLimit      = 1
	MaxLimit      = 50
)

// SearchResultCap is the maximum number of rows the search endpoint
// returns; matchTotal still counts every matching record.
const SearchResultCap = 6

// MaxSearchTermLength is the length the search term is truncated to
// before querying.
const MaxSearchTermLength = 200

// ListUsersParams represents parameters for the paginated listing query
type ListUsersParams struct {
	Offset int
	Limit  int
}

// SearchUsersParams represents parameters for the search query. Term is
// expected to be already trimmed, truncated and sanitized by the caller.
type SearchUsersParams struct {
	Term string
}
