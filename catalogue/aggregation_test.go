package catalogue

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given an aggregation payload", t, func() {

		Convey("When it is absent or null, an empty list is returned", func() {
			So(Normalize(nil), ShouldResemble, []Bucket{})
			So(Normalize(json.RawMessage(`null`)), ShouldResemble, []Bucket{})
			So(Normalize(json.RawMessage(`  `)), ShouldResemble, []Bucket{})
		})

		Convey("When it is a scalar, an empty list is returned", func() {
			So(Normalize(json.RawMessage(`"tags"`)), ShouldResemble, []Bucket{})
			So(Normalize(json.RawMessage(`42`)), ShouldResemble, []Bucket{})
		})

		Convey("When it maps keys to doc_count objects and raw numbers, counts are extracted in key order", func() {
			got := Normalize(json.RawMessage(`{"a": {"doc_count": 3}, "b": 5}`))
			So(got, ShouldResemble, []Bucket{{Key: "a", Count: 3}, {Key: "b", Count: 5}})
		})

		Convey("When keys are not alphabetical, their payload order is kept", func() {
			got := Normalize(json.RawMessage(`{"zeta": 1, "alpha": 2, "mid": 3}`))
			So(got, ShouldResemble, []Bucket{{Key: "zeta", Count: 1}, {Key: "alpha", Count: 2}, {Key: "mid", Count: 3}})
		})

		Convey("When an object only has the alternate count field, it is used", func() {
			got := Normalize(json.RawMessage(`{"health": {"count": 7}}`))
			So(got, ShouldResemble, []Bucket{{Key: "health", Count: 7}})
		})

		Convey("When doc_count is present it wins over count", func() {
			got := Normalize(json.RawMessage(`{"health": {"doc_count": 2, "count": 9}}`))
			So(got, ShouldResemble, []Bucket{{Key: "health", Count: 2}})
		})

		Convey("When counts are missing or malformed, they fall back to zero", func() {
			got := Normalize(json.RawMessage(`{"a": {}, "b": "lots", "c": null, "d": -4, "e": {"doc_count": "x"}}`))
			So(got, ShouldResemble, []Bucket{
				{Key: "a", Count: 0},
				{Key: "b", Count: 0},
				{Key: "c", Count: 0},
				{Key: "d", Count: 0},
				{Key: "e", Count: 0},
			})
		})

		Convey("When counts are numeric strings or fractional, a best effort count is used", func() {
			got := Normalize(json.RawMessage(`{"a": "12", "b": 3.9}`))
			So(got, ShouldResemble, []Bucket{{Key: "a", Count: 12}, {Key: "b", Count: 3}})
		})

		Convey("When it is already a list, entries are passed through", func() {
			got := Normalize(json.RawMessage(`[{"key": "csv", "count": 4}, {"key": "pdf", "doc_count": 1}]`))
			So(got, ShouldResemble, []Bucket{{Key: "csv", Count: 4}, {Key: "pdf", Count: 1}})
		})

		Convey("When a list holds bare values, they become zero-count keys", func() {
			got := Normalize(json.RawMessage(`["csv", 10, null]`))
			So(got, ShouldResemble, []Bucket{{Key: "csv"}, {Key: "10"}})
		})

		Convey("When the mapping is truncated, the entries read so far are kept", func() {
			got := Normalize(json.RawMessage(`{"a": 1, "b": `))
			So(got, ShouldResemble, []Bucket{{Key: "a", Count: 1}})
		})

		Convey("When the list is invalid JSON, an empty list is returned", func() {
			So(Normalize(json.RawMessage(`[{"key": `)), ShouldResemble, []Bucket{})
		})
	})
}

func TestNormalizeAll(t *testing.T) {
	Convey("Given aggregations for some categories", t, func() {
		raw := map[string]json.RawMessage{
			"tags":      json.RawMessage(`{"water": 2}`),
			"geography": json.RawMessage(`[{"key": "Assam", "count": 8}]`),
			"licenses":  json.RawMessage(`{"open": 1}`),
		}

		aggs := NormalizeAll(raw)

		Convey("Every known category is present and unknown ones are ignored", func() {
			So(aggs, ShouldHaveLength, len(Categories))
			So(aggs[Tags], ShouldResemble, []Bucket{{Key: "water", Count: 2}})
			So(aggs[Sectors], ShouldResemble, []Bucket{})
			So(aggs[Formats], ShouldResemble, []Bucket{})
			So(aggs[Geography], ShouldResemble, []Bucket{{Key: "Assam", Count: 8}})
		})

		Convey("Counts can be looked up by key", func() {
			So(aggs.Count(Geography, "Assam"), ShouldEqual, 8)
			So(aggs.Count(Geography, "Goa"), ShouldEqual, 0)
			So(aggs.Count(Sectors, "health"), ShouldEqual, 0)
		})
	})
}
