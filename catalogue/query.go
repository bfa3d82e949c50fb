package catalogue

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SortMode is the ordering chosen in the "Latest Updated" control
type SortMode string

// Sort modes
const (
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
	SortLastWeek  SortMode = "last-week"
	SortLastMonth SortMode = "last-month"
	SortLastYear  SortMode = "last-year"
)

// SortModes lists every sort mode in display order
var SortModes = []SortMode{SortNewest, SortOldest, SortLastWeek, SortLastMonth, SortLastYear}

// ParseSortMode returns the sort mode named s
func ParseSortMode(s string) (SortMode, error) {
	for _, m := range SortModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownSortMode, "%q", s)
}

// filterDelimiter joins the selected values of one category
const filterDelimiter = "+"

// sortParams maps a sort mode onto the search API's sort and order parameters. The relative
// date modes have no agreed server-side meaning yet and send nothing.
var sortParams = map[SortMode][2]string{
	SortNewest: {"recent", "desc"},
	SortOldest: {"recent", "asc"},
}

// QueryParameters are the search API query parameters for one fetch
type QueryParameters map[string]string

// Page returns the requested page, or zero if it is not set
func (q QueryParameters) Page() int {
	n, _ := strconv.Atoi(q["page"])
	return n
}

// Size returns the requested page length, or zero if it is not set
func (q QueryParameters) Size() int {
	n, _ := strconv.Atoi(q["size"])
	return n
}

// Encode returns the parameters URL-encoded and sorted by key
func (q QueryParameters) Encode() string {
	v := make(url.Values, len(q))
	for k, s := range q {
		v.Set(k, s)
	}
	return v.Encode()
}

// Compose derives the search API parameters for the given state. Empty categories and an
// empty search are left out rather than sent blank.
func Compose(filters Filters, search string, sort SortMode, page, size int) QueryParameters {
	q := QueryParameters{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}

	if s := strings.TrimSpace(search); s != "" {
		q["query"] = s
	}

	for _, c := range Categories {
		if values := filters.Values(c); len(values) > 0 {
			q[c.queryParam()] = strings.Join(values, filterDelimiter)
		}
	}

	if p, ok := sortParams[sort]; ok {
		q["sort"] = p[0]
		q["order"] = p[1]
	}

	return q
}
