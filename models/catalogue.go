package models

// CataloguePage is the dataset catalogue page
type CataloguePage struct {
	Page
	Data Catalogue `json:"data"`
}

// Catalogue holds everything shown on the catalogue page
type Catalogue struct {
	SessionID  string       `json:"session_id,omitempty"`
	Status     string       `json:"status"`
	Error      string       `json:"error,omitempty"`
	Search     string       `json:"search"`
	ViewMode   string       `json:"view_mode"`
	SortModes  []Option     `json:"sort_modes"`
	PageSizes  []Option     `json:"page_sizes"`
	Facets     []Facet      `json:"facets"`
	Datasets   []Dataset    `json:"datasets"`
	Pagination Pagination   `json:"pagination"`
	Summary    string       `json:"summary"`
	Scroll     bool         `json:"scroll_to_top,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
	Links      CatalogueURL `json:"links"`
}

// Option is one choice of a select control
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Facet is a filter panel with its checkboxes
type Facet struct {
	Name    string        `json:"name"`
	Title   string        `json:"title"`
	Empty   string        `json:"empty"`
	Options []FacetOption `json:"options"`
}

// FacetOption is one checkbox in a filter panel
type FacetOption struct {
	Value    string `json:"value"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// Dataset is one card or row of the catalogue
type Dataset struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Description  string   `json:"description"`
	LastUpdated  string   `json:"last_updated"`
	Downloads    string   `json:"downloads"`
	Geography    string   `json:"geography"`
	PublishedBy  string   `json:"published_by"`
	Sectors      []string `json:"sectors"`
	Tags         []string `json:"tags"`
	Formats      []string `json:"formats"`
	MoreSectors  int      `json:"more_sectors,omitempty"`
	MoreTags     int      `json:"more_tags,omitempty"`
	SectorsText  string   `json:"sectors_text"`
	TagsText     string   `json:"tags_text"`
	FormatsText  string   `json:"formats_text"`
}

// Pagination is the page picker and navigation arrows
type Pagination struct {
	CurrentPage  int        `json:"current_page"`
	TotalPages   int        `json:"total_pages"`
	ItemsPerPage int        `json:"items_per_page"`
	TotalItems   int        `json:"total_items"`
	HasPrev      bool       `json:"has_prev"`
	HasNext      bool       `json:"has_next"`
	Pages        []PageLink `json:"pages"`
	ShowPicker   bool       `json:"show_picker"`
}

// PageLink is a page number button or an ellipsis
type PageLink struct {
	Number   int    `json:"number,omitempty"`
	URI      string `json:"uri,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
}

// CatalogueURL holds the links the navigation controls point at
type CatalogueURL struct {
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}
