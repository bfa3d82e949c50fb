package catalogue

import "github.com/pkg/errors"

// FetchErrorReason is the only failure message shown to users, whatever went wrong
const FetchErrorReason = "fetch error"

var (
	// ErrNetwork covers rejected requests, timeouts and non-2xx responses from the search API
	ErrNetwork = errors.New("search api request failed")
	// ErrMalformedResponse covers bodies that cannot be decoded or that have no results
	ErrMalformedResponse = errors.New("malformed search api response")

	ErrInvalidPageSize = errors.New("invalid page size")
	ErrUnknownCategory = errors.New("unknown facet category")
	ErrEmptyFacetValue = errors.New("empty facet value")
	ErrUnknownSortMode = errors.New("unknown sort mode")
	ErrUnknownViewMode = errors.New("unknown view mode")

	// ErrSuperseded is returned to a caller whose fetch resolved after a newer one was issued.
	// Its response was dropped.
	ErrSuperseded = errors.New("fetch superseded by a newer request")
)

// errorKind names the diagnostic category of a fetch failure for logging
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unknown"
	}
}
