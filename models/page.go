package models

// Page contains the fields shared by every page sent to the renderer
type Page struct {
	Type                  string         `json:"type"`
	Metadata              Metadata       `json:"metadata"`
	Breadcrumb            []TaxonomyNode `json:"breadcrumb"`
	TaxonomyDomain        string         `json:"taxonomy_domain"`
	BetaBannerEnabled     bool           `json:"beta_banner_enabled"`
	CookiesPreferencesSet bool           `json:"cookies_preferences_set"`
	CookiesPolicy         CookiesPolicy  `json:"cookies_policy"`
}

// CookiesPolicy is the visitor's cookie consent
type CookiesPolicy struct {
	Essential bool `json:"essential"`
	Usage     bool `json:"usage"`
}

// Metadata of a page
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TaxonomyNode is one step of a breadcrumb
type TaxonomyNode struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}
