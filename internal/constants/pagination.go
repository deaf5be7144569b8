package constants

// Pagination defaults and clamps applied at the HTTP boundary. Services and
// repositories trust the values they receive.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10

	MinPageNumber = 1
	MinPageSize   = 1
	MaxPageSize   = 100
)
