package mapper

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ONSdigital/dp-cookies/cookies"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/ONSdigital/dp-frontend-catalogue-controller/models"
)

// PageType is the renderer template of the catalogue page
const PageType = "dataset-catalogue"

const (
	notAvailable     = "N/A"
	noOrganization   = "No Organization"
	noDescription    = "No description available."
	dateLayout       = "02 Jan 2006"
	listViewMaxItems = 3
)

// modifiedLayouts are the timestamp layouts the search API has been seen to use
var modifiedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var facetTitles = map[catalogue.Category][2]string{
	catalogue.Tags:      {"Tags", "No tags available"},
	catalogue.Sectors:   {"Sectors", "No sectors available"},
	catalogue.Formats:   {"Data Type", "No formats available"},
	catalogue.Geography: {"Geographies", "No geographies available"},
}

var sortLabels = map[catalogue.SortMode]string{
	catalogue.SortNewest:    "Newest First",
	catalogue.SortOldest:    "Oldest First",
	catalogue.SortLastWeek:  "Last Week",
	catalogue.SortLastMonth: "Last Month",
	catalogue.SortLastYear:  "Last Year",
}

// PageURL returns the link to a page of the catalogue with everything else unchanged
type PageURL func(page int) string

// SetTaxonomyDomain will set the taxonomy domain for a given pages
func SetTaxonomyDomain(p *models.Page) {
	p.TaxonomyDomain = os.Getenv("TAXONOMY_DOMAIN")
}

// SetCookiePreferences copies the visitor's cookie consent onto a page
func SetCookiePreferences(p *models.Page, prefs cookies.PreferencesResponse) {
	p.CookiesPreferencesSet = prefs.IsPreferenceSet
	p.CookiesPolicy.Essential = prefs.Policy.Essential
	p.CookiesPolicy.Usage = prefs.Policy.Usage
}

// CreateCataloguePage maps a catalogue view onto the page model. pageURL may be nil when
// navigation happens through session commands rather than links.
func CreateCataloguePage(v catalogue.View, sessionID string, pageURL PageURL) models.CataloguePage {
	var page models.CataloguePage
	page.Type = PageType
	page.Metadata.Title = "Datasets"
	page.BetaBannerEnabled = true
	page.Breadcrumb = []models.TaxonomyNode{
		{
			Title: "Home",
			URI:   "/",
		},
		{
			Title: "Datasets",
			URI:   "/datasets",
		},
	}
	SetTaxonomyDomain(&page.Page)

	page.Data.SessionID = sessionID
	page.Data.Status = v.Status.String()
	page.Data.Error = v.Reason
	page.Data.Search = v.Search
	page.Data.ViewMode = string(v.ViewMode)
	page.Data.Scroll = v.ScrollToTop
	page.Data.SortModes = mapSortModes(v.Sort)
	page.Data.PageSizes = mapPageSizes(v.Pagination.ItemsPerPage)
	page.Data.Facets = mapFacets(v.Aggregations, v.Filters)
	page.Data.Pagination = mapPagination(v, pageURL)
	page.Data.Links = mapLinks(v.Pagination, pageURL)

	if v.Status == catalogue.StatusReady {
		page.Data.Datasets = make([]models.Dataset, 0, len(v.Records))
		for _, rec := range v.Records {
			page.Data.Datasets = append(page.Data.Datasets, MapDataset(rec))
		}
		page.Data.Summary = summary(v.Pagination)
		if !v.TotalReported {
			page.Data.Warnings = append(page.Data.Warnings, "The total number of datasets is an estimate")
		}
	}

	return page
}

// MapDataset applies the display defaults to a record
func MapDataset(rec catalogue.Record) models.Dataset {
	d := models.Dataset{
		ID:           string(rec.ID),
		Title:        string(rec.Title),
		Organization: noOrganization,
		Description:  orDefault(string(rec.Description), noDescription),
		LastUpdated:  formatModified(string(rec.Modified)),
		Downloads:    notAvailable,
		Geography:    joinOrDefault(rec.Geography),
		PublishedBy:  orDefault(string(rec.Name), notAvailable),
		SectorsText:  joinOrDefault(rec.Sectors),
		TagsText:     joinOrDefault(rec.Tags),
		FormatsText:  joinOrDefault(rec.Formats),
		Formats:      []string(rec.Formats),
	}
	if rec.Organization != nil && rec.Organization.Name != "" {
		d.Organization = string(rec.Organization.Name)
	}
	if rec.DownloadCount != nil {
		d.Downloads = rec.DownloadCount.String()
	}
	d.Sectors, d.MoreSectors = truncate(rec.Sectors)
	d.Tags, d.MoreTags = truncate(rec.Tags)
	return d
}

func mapSortModes(current catalogue.SortMode) []models.Option {
	options := make([]models.Option, 0, len(catalogue.SortModes))
	for _, m := range catalogue.SortModes {
		options = append(options, models.Option{
			Value:    string(m),
			Label:    sortLabels[m],
			Selected: m == current,
		})
	}
	return options
}

func mapPageSizes(current int) []models.Option {
	options := make([]models.Option, 0, len(catalogue.PageSizes))
	for _, n := range catalogue.PageSizes {
		options = append(options, models.Option{
			Value:    fmt.Sprint(n),
			Label:    fmt.Sprint(n),
			Selected: n == current,
		})
	}
	return options
}

// mapFacets lists the aggregation buckets of each category. Selected values the latest
// response did not count are kept so they can still be deselected.
func mapFacets(aggs catalogue.Aggregations, filters catalogue.Filters) []models.Facet {
	facets := make([]models.Facet, 0, len(catalogue.Categories))
	for _, c := range catalogue.Categories {
		facet := models.Facet{
			Name:    string(c),
			Title:   facetTitles[c][0],
			Empty:   facetTitles[c][1],
			Options: []models.FacetOption{},
		}
		seen := map[string]bool{}
		for _, b := range aggs[c] {
			seen[b.Key] = true
			facet.Options = append(facet.Options, models.FacetOption{
				Value:    b.Key,
				Count:    b.Count,
				Selected: filters.IsSelected(c, b.Key),
			})
		}
		for _, v := range filters.Values(c) {
			if !seen[v] {
				facet.Options = append(facet.Options, models.FacetOption{Value: v, Selected: true})
			}
		}
		facets = append(facets, facet)
	}
	return facets
}

func mapPagination(v catalogue.View, pageURL PageURL) models.Pagination {
	p := models.Pagination{
		CurrentPage:  v.Pagination.CurrentPage,
		TotalPages:   v.Pagination.TotalPages,
		ItemsPerPage: v.Pagination.ItemsPerPage,
		TotalItems:   v.Pagination.TotalItems,
		HasPrev:      v.Pagination.HasPrev,
		HasNext:      v.Pagination.HasNext,
		ShowPicker:   len(v.PagePicker) > 0,
		Pages:        make([]models.PageLink, 0, len(v.PagePicker)),
	}
	for _, l := range v.PagePicker {
		link := models.PageLink{Number: l.Number, Current: l.Current, Ellipsis: l.Ellipsis}
		if !l.Ellipsis && pageURL != nil {
			link.URI = pageURL(l.Number)
		}
		p.Pages = append(p.Pages, link)
	}
	return p
}

func mapLinks(p catalogue.Pagination, pageURL PageURL) models.CatalogueURL {
	var links models.CatalogueURL
	if pageURL == nil {
		return links
	}
	if p.HasPrev {
		links.First = pageURL(1)
		links.Prev = pageURL(p.CurrentPage - 1)
	}
	if p.HasNext {
		links.Next = pageURL(p.CurrentPage + 1)
		links.Last = pageURL(p.TotalPages)
	}
	return links
}

func summary(p catalogue.Pagination) string {
	if p.TotalItems == 0 {
		return "No datasets found"
	}
	return fmt.Sprintf("Showing %d-%d of %d datasets", p.StartIndex+1, p.EndIndex, p.TotalItems)
}

func formatModified(s string) string {
	if s == "" {
		return notAvailable
	}
	for _, layout := range modifiedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout)
		}
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func joinOrDefault(l catalogue.StringList) string {
	if len(l) == 0 {
		return notAvailable
	}
	return strings.Join(l, ", ")
}

// truncate keeps the first few values for the list view and counts the rest
func truncate(l catalogue.StringList) ([]string, int) {
	if len(l) <= listViewMaxItems {
		return []string(l), 0
	}
	return []string(l[:listViewMaxItems]), len(l) - listViewMaxItems
}
