package catalogue

import (
	"slices"

	"github.com/pkg/errors"
)

// Category is a facet dimension datasets can be filtered on
type Category string

// Facet categories
const (
	Tags      Category = "tags"
	Sectors   Category = "sectors"
	Formats   Category = "formats"
	Geography Category = "geography"
)

// Categories lists every facet category in display order
var Categories = []Category{Tags, Sectors, Formats, Geography}

// ParseCategory returns the category named s
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(Categories, c) {
		return "", errors.Wrapf(ErrUnknownCategory, "%q", s)
	}
	return c, nil
}

// queryParam is the search API parameter a category is sent as
func (c Category) queryParam() string {
	if c == Geography {
		return "Geography"
	}
	return string(c)
}

// Filters is the set of selected facet values per category. Values within a category are
// OR-combined by the search API and categories are AND-combined. A Filters value is never
// modified once built; Toggle returns a new one.
type Filters struct {
	selected map[Category][]string
}

// NewFilters returns filters with nothing selected
func NewFilters() Filters {
	return Filters{selected: map[Category][]string{}}
}

// FiltersOf builds filters from a selection, dropping empty and repeated values
func FiltersOf(selection map[Category][]string) Filters {
	f := NewFilters()
	for c, values := range selection {
		for _, v := range values {
			if v == "" || f.IsSelected(c, v) {
				continue
			}
			f.selected[c] = append(f.selected[c], v)
		}
	}
	return f
}

// Toggle removes value from category if it is selected and adds it otherwise. A blank value
// leaves the filters unchanged.
func (f Filters) Toggle(c Category, value string) Filters {
	if value == "" {
		return f
	}
	next := Filters{selected: make(map[Category][]string, len(f.selected))}
	for k, v := range f.selected {
		if k != c {
			next.selected[k] = v
		}
	}

	current := f.selected[c]
	if i := slices.Index(current, value); i >= 0 {
		remaining := slices.Delete(slices.Clone(current), i, i+1)
		if len(remaining) > 0 {
			next.selected[c] = remaining
		}
		return next
	}
	next.selected[c] = append(slices.Clone(current), value)
	return next
}

// IsSelected reports whether value is selected in category. Unknown categories are empty.
func (f Filters) IsSelected(c Category, value string) bool {
	return slices.Contains(f.selected[c], value)
}

// Values returns the selected values of a category in the order they were selected
func (f Filters) Values(c Category) []string {
	return slices.Clone(f.selected[c])
}

// Empty reports whether no value is selected in any category
func (f Filters) Empty() bool {
	for _, v := range f.selected {
		if len(v) > 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both filters select the same values in the same order
func (f Filters) Equal(o Filters) bool {
	for _, c := range append(slices.Clone(Categories), f.extraCategories(o)...) {
		if !slices.Equal(f.selected[c], o.selected[c]) {
			return false
		}
	}
	return true
}

func (f Filters) extraCategories(o Filters) []Category {
	var extra []Category
	for _, m := range []map[Category][]string{f.selected, o.selected} {
		for c := range m {
			if !slices.Contains(Categories, c) && !slices.Contains(extra, c) {
				extra = append(extra, c)
			}
		}
	}
	return extra
}
