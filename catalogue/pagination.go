package catalogue

import "slices"

// PageSizes are the page lengths a user may pick
var PageSizes = []int{6, 12, 24, 48}

// DefaultPageSize is used until the user picks another
const DefaultPageSize = 12

// pickerWindow is how many pages either side of the current one the page picker shows
const pickerWindow = 2

// ValidPageSize reports whether n is one of PageSizes
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// PageState is the pagination position, independent of the data it shows
type PageState struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
}

// TotalPages is ceil(TotalItems / ItemsPerPage)
func (p PageState) TotalPages() int {
	if p.ItemsPerPage <= 0 || p.TotalItems <= 0 {
		return 0
	}
	return (p.TotalItems + p.ItemsPerPage - 1) / p.ItemsPerPage
}

// Clamp brings n into [1, max(TotalPages, 1)]
func (p PageState) Clamp(n int) int {
	last := max(p.TotalPages(), 1)
	return min(max(n, 1), last)
}

// StartIndex is the zero-based index of the first item on the current page
func (p PageState) StartIndex() int {
	return max(p.CurrentPage-1, 0) * p.ItemsPerPage
}

// EndIndex is one past the index of the last item on the current page
func (p PageState) EndIndex() int {
	start := p.StartIndex()
	return max(min(start+p.ItemsPerPage, p.TotalItems), start)
}

// HasPrev reports whether there is a page before the current one
func (p PageState) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether there is a page after the current one
func (p PageState) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

// PageLink is one entry of the page picker: either a page number or a gap marker
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PagePicker lists the pages to offer: the first and last page, pages within two of the
// current one, and one ellipsis for each gap. There is nothing to pick with fewer than two pages.
func PagePicker(current, totalPages int) []PageLink {
	if totalPages <= 1 {
		return nil
	}

	var links []PageLink
	previous := 0
	for page := 1; page <= totalPages; page++ {
		shown := page == 1 || page == totalPages ||
			(page >= current-pickerWindow && page <= current+pickerWindow)
		if !shown {
			continue
		}
		if page-previous > 1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Number: page, Current: page == current})
		previous = page
	}
	return links
}
