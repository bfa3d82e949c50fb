package handlers

import (
	"net/url"
	"strconv"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// catalogueRequest is the catalogue state carried in a query string or form
type catalogueRequest struct {
	Query     string   `schema:"q"`
	Sort      string   `schema:"sort,default:newest"`
	Page      int      `schema:"page"`
	Size      int      `schema:"size"`
	Tags      []string `schema:"tags"`
	Sectors   []string `schema:"sectors"`
	Formats   []string `schema:"formats"`
	Geography []string `schema:"geography"`
	View      string   `schema:"view,default:card"`
}

// commandRequest is one command sent to a catalogue session
type commandRequest struct {
	Command  string `schema:"command,required"`
	Value    string `schema:"value"`
	Category string `schema:"category"`
}

func decodeCatalogueRequest(values url.Values) (*catalogueRequest, error) {
	cr := &catalogueRequest{}
	if err := decoder.Decode(cr, values); err != nil {
		return nil, err
	}
	return cr, nil
}

func decodeCommandRequest(values url.Values) (*commandRequest, error) {
	cmd := &commandRequest{}
	if err := decoder.Decode(cmd, values); err != nil {
		return nil, err
	}
	return cmd, nil
}

// state converts the request into browser state. A missing or unlisted page size falls back
// to defaultPageSize and pages below 1 become page 1.
func (cr *catalogueRequest) state(defaultPageSize int) (catalogue.State, error) {
	s := catalogue.DefaultState()

	sort, err := catalogue.ParseSortMode(cr.Sort)
	if err != nil {
		return s, err
	}
	view, err := catalogue.ParseViewMode(cr.View)
	if err != nil {
		return s, err
	}

	s.Search = cr.Query
	s.Sort = sort
	s.ViewMode = view
	s.Page = max(cr.Page, 1)
	s.PageSize = defaultPageSize
	if catalogue.ValidPageSize(cr.Size) {
		s.PageSize = cr.Size
	}
	s.Filters = catalogue.FiltersOf(map[catalogue.Category][]string{
		catalogue.Tags:      cr.Tags,
		catalogue.Sectors:   cr.Sectors,
		catalogue.Formats:   cr.Formats,
		catalogue.Geography: cr.Geography,
	})
	return s, nil
}

// stateValues is the query string that reproduces s on the catalogue page, without the page
func stateValues(s catalogue.State) url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set("q", s.Search)
	}
	v.Set("sort", string(s.Sort))
	v.Set("size", strconv.Itoa(s.PageSize))
	v.Set("view", string(s.ViewMode))
	for _, c := range catalogue.Categories {
		for _, value := range s.Filters.Values(c) {
			v.Add(string(c), value)
		}
	}
	return v
}

// pageURL links to the pages of the stateless catalogue for s
func pageURL(s catalogue.State) func(int) string {
	base := stateValues(s)
	return func(page int) string {
		v := url.Values{}
		for k, values := range base {
			v[k] = values
		}
		v.Set("page", strconv.Itoa(page))
		return cataloguePath + "?" + v.Encode()
	}
}
