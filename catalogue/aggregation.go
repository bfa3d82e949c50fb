package catalogue

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Bucket is one facet value and the number of matching datasets
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Aggregations holds the normalised facet counts of one response
type Aggregations map[Category][]Bucket

// Count returns the count reported for a facet value, or zero
func (a Aggregations) Count(c Category, key string) int {
	for _, b := range a[c] {
		if b.Key == key {
			return b.Count
		}
	}
	return 0
}

// aggregationShape is the discriminator over the payloads the search API may send for a facet
type aggregationShape int

const (
	// shapeAbsent is a missing value, null, or anything that is neither an array nor an object
	shapeAbsent aggregationShape = iota
	// shapeSequence is an array of {key, count} entries
	shapeSequence
	// shapeMapping is an object of key to a raw count or to an object holding a count
	shapeMapping
)

func shapeOf(raw json.RawMessage) aggregationShape {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return shapeAbsent
	}
	switch raw[0] {
	case '[':
		return shapeSequence
	case '{':
		return shapeMapping
	default:
		return shapeAbsent
	}
}

// countFields is the fallback chain used to find a count inside an object value
var countFields = []string{"doc_count", "count"}

// Normalize converts a facet aggregation into an ordered list of buckets. Mapping order is
// preserved. It never fails: anything it cannot read becomes a zero count or is dropped.
func Normalize(raw json.RawMessage) []Bucket {
	switch shapeOf(raw) {
	case shapeSequence:
		return normalizeSequence(raw)
	case shapeMapping:
		return normalizeMapping(raw)
	default:
		return []Bucket{}
	}
}

// NormalizeAll normalises the aggregations of every known category. Categories missing from
// the payload get an empty list.
func NormalizeAll(raw map[string]json.RawMessage) Aggregations {
	aggs := make(Aggregations, len(Categories))
	for _, c := range Categories {
		aggs[c] = Normalize(raw[string(c)])
	}
	return aggs
}

func normalizeSequence(raw json.RawMessage) []Bucket {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []Bucket{}
	}

	buckets := make([]Bucket, 0, len(items))
	for _, item := range items {
		if shapeOf(item) != shapeMapping {
			if key, err := scalarText(item); err == nil && key != "" {
				buckets = append(buckets, Bucket{Key: key})
			}
			continue
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		key, _ := scalarText(fields["key"])
		buckets = append(buckets, Bucket{Key: key, Count: countOf(item)})
	}
	return buckets
}

func normalizeMapping(raw json.RawMessage) []Bucket {
	buckets := []Bucket{}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return buckets
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return buckets
		}
		key, ok := tok.(string)
		if !ok {
			return buckets
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return buckets
		}
		buckets = append(buckets, Bucket{Key: key, Count: countOf(value)})
	}
	return buckets
}

// countOf reads a count from a raw number, a numeric string, or an object with a count field
func countOf(value json.RawMessage) int {
	if shapeOf(value) == shapeMapping {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(value, &fields); err != nil {
			return 0
		}
		for _, name := range countFields {
			if v, ok := fields[name]; ok {
				if n, ok := numeric(v); ok {
					return n
				}
			}
		}
		return 0
	}
	if n, ok := numeric(value); ok {
		return n
	}
	return 0
}

func numeric(value json.RawMessage) (int, bool) {
	s, err := scalarText(value)
	if err != nil || s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < 0 {
		return 0, true
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	return int(f), true
}
