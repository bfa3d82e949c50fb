package catalogue

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompose(t *testing.T) {
	Convey("Given a sector filter and an empty tag selection", t, func() {
		filters := FiltersOf(map[Category][]string{Tags: {}, Sectors: {"health"}})

		q := Compose(filters, "", SortNewest, 1, 12)

		Convey("Only the selected facet, sort and paging are sent", func() {
			So(q, ShouldResemble, QueryParameters{
				"sectors": "health",
				"sort":    "recent",
				"order":   "desc",
				"page":    "1",
				"size":    "12",
			})
			_, hasTags := q["tags"]
			So(hasTags, ShouldBeFalse)
			_, hasQuery := q["query"]
			So(hasQuery, ShouldBeFalse)
		})
	})

	Convey("Given values in every category", t, func() {
		filters := FiltersOf(map[Category][]string{
			Tags:      {"water", "rain"},
			Sectors:   {"health"},
			Formats:   {"csv", "pdf"},
			Geography: {"Assam"},
		})

		q := Compose(filters, "  rainfall  ", SortOldest, 3, 24)

		Convey("Values are joined with + and geography is sent capitalised", func() {
			So(q["tags"], ShouldEqual, "water+rain")
			So(q["formats"], ShouldEqual, "csv+pdf")
			So(q["Geography"], ShouldEqual, "Assam")
			_, lower := q["geography"]
			So(lower, ShouldBeFalse)
		})

		Convey("The search is trimmed and oldest sorts ascending", func() {
			So(q["query"], ShouldEqual, "rainfall")
			So(q["order"], ShouldEqual, "asc")
			So(q.Page(), ShouldEqual, 3)
			So(q.Size(), ShouldEqual, 24)
		})

		Convey("Encoding is sorted by key", func() {
			So(q.Encode(), ShouldEqual,
				"Geography=Assam&formats=csv%2Bpdf&order=asc&page=3&query=rainfall&sectors=health&size=24&sort=recent&tags=water%2Brain")
		})
	})

	Convey("The relative date sort modes send no sort parameters", t, func() {
		for _, m := range []SortMode{SortLastWeek, SortLastMonth, SortLastYear} {
			q := Compose(NewFilters(), "", m, 1, 6)
			So(q, ShouldResemble, QueryParameters{"page": "1", "size": "6"})
		}
	})

	Convey("A whitespace-only search is left out", t, func() {
		q := Compose(NewFilters(), "   ", SortNewest, 1, 12)
		_, ok := q["query"]
		So(ok, ShouldBeFalse)
	})
}

func TestParseSortMode(t *testing.T) {
	Convey("Known sort modes parse and unknown ones fail", t, func() {
		for _, m := range SortModes {
			got, err := ParseSortMode(string(m))
			So(err, ShouldBeNil)
			So(got, ShouldEqual, m)
		}
		_, err := ParseSortMode("popular")
		So(err, ShouldNotBeNil)
	})
}
