package catalogue

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ONSdigital/log.go/v2/log"
	"github.com/pkg/errors"
)

// Searcher fetches one page of datasets from the search API
type Searcher interface {
	Search(ctx context.Context, params QueryParameters) (Response, error)
}

// Response is a decoded search API response. Total is nil when the API did not report one.
type Response struct {
	Results      []Record
	Aggregations map[string]json.RawMessage
	Total        *int
}

// Status is the lifecycle of the latest fetch
type Status int

// Fetch statuses
const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ViewMode is the cosmetic card or list layout
type ViewMode string

// View modes
const (
	ViewCard ViewMode = "card"
	ViewList ViewMode = "list"
)

// ParseViewMode returns the view mode named s
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ViewCard, ViewList:
		return m, nil
	}
	return "", errors.Wrapf(ErrUnknownViewMode, "%q", s)
}

// State is what the user has chosen: search, filters, sort, page position and layout
type State struct {
	Filters  Filters
	Search   string
	Sort     SortMode
	Page     int
	PageSize int
	ViewMode ViewMode
}

// DefaultState is the state of a new page view: newest first, page 1 of 12, card layout
func DefaultState() State {
	return State{
		Filters:  NewFilters(),
		Sort:     SortNewest,
		Page:     1,
		PageSize: DefaultPageSize,
		ViewMode: ViewCard,
	}
}

// Validate checks the state only holds values the controls can produce
func (s State) Validate() error {
	if _, err := ParseSortMode(string(s.Sort)); err != nil {
		return err
	}
	if !ValidPageSize(s.PageSize) {
		return errors.Wrapf(ErrInvalidPageSize, "%d", s.PageSize)
	}
	if _, err := ParseViewMode(string(s.ViewMode)); err != nil {
		return err
	}
	return nil
}

// Pagination is the derived pagination of a view
type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	ItemsPerPage int  `json:"items_per_page"`
	TotalItems   int  `json:"total_items"`
	TotalPages   int  `json:"total_pages"`
	StartIndex   int  `json:"start_index"`
	EndIndex     int  `json:"end_index"`
	HasPrev      bool `json:"has_prev"`
	HasNext      bool `json:"has_next"`
}

// View is a snapshot of a Browser for the presentation layer. Records and Aggregations are
// only set while Ready.
type View struct {
	Status        Status
	Reason        string
	Records       []Record
	Aggregations  Aggregations
	Filters       Filters
	Search        string
	Sort          SortMode
	ViewMode      ViewMode
	Pagination    Pagination
	PagePicker    []PageLink
	TotalReported bool
	// ScrollToTop is set when the latest command moved between pages
	ScrollToTop bool
}

// Browser holds the state of one catalogue page view and owns its fetches. Every command
// that changes what is shown issues a fetch; only the most recently issued fetch may apply
// its result.
type Browser struct {
	searcher Searcher

	mu            sync.Mutex
	state         State
	seq           uint64
	status        Status
	failure       error
	records       []Record
	aggregations  Aggregations
	totalItems    int
	totalKnown    bool
	totalReported bool
	scrollToTop   bool
}

// NewBrowser returns a browser starting from the given state. Nothing is fetched until Load.
func NewBrowser(searcher Searcher, initial State) (*Browser, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	initial.Page = max(initial.Page, 1)
	return &Browser{
		searcher:     searcher,
		state:        initial,
		status:       StatusLoading,
		aggregations: NormalizeAll(nil),
	}, nil
}

// Load fetches the current page with the current state
func (b *Browser) Load(ctx context.Context) error {
	return b.update(ctx, false, func(*State) bool { return true })
}

// SetSearch changes the free-text search and returns to page 1
func (b *Browser) SetSearch(ctx context.Context, text string) error {
	return b.update(ctx, false, func(s *State) bool {
		if s.Search == text {
			return false
		}
		s.Search = text
		s.Page = 1
		return true
	})
}

// SetSort changes the sort mode and returns to page 1
func (b *Browser) SetSort(ctx context.Context, mode SortMode) error {
	if _, err := ParseSortMode(string(mode)); err != nil {
		return err
	}
	return b.update(ctx, false, func(s *State) bool {
		if s.Sort == mode {
			return false
		}
		s.Sort = mode
		s.Page = 1
		return true
	})
}

// ToggleFilter selects or deselects a facet value and returns to page 1
func (b *Browser) ToggleFilter(ctx context.Context, c Category, value string) error {
	if _, err := ParseCategory(string(c)); err != nil {
		return err
	}
	if value == "" {
		return errors.Wrapf(ErrEmptyFacetValue, "%s", c)
	}
	return b.update(ctx, false, func(s *State) bool {
		s.Filters = s.Filters.Toggle(c, value)
		s.Page = 1
		return true
	})
}

// ChangePageSize changes the page length and returns to page 1
func (b *Browser) ChangePageSize(ctx context.Context, size int) error {
	if !ValidPageSize(size) {
		return errors.Wrapf(ErrInvalidPageSize, "%d", size)
	}
	return b.update(ctx, false, func(s *State) bool {
		s.PageSize = size
		s.Page = 1
		return true
	})
}

// GoToPage moves to page n. It does nothing if n is the current page.
func (b *Browser) GoToPage(ctx context.Context, n int) error {
	return b.navigate(ctx, func(PageState) int { return n })
}

// FirstPage moves to page 1
func (b *Browser) FirstPage(ctx context.Context) error {
	return b.navigate(ctx, func(PageState) int { return 1 })
}

// PrevPage moves back one page
func (b *Browser) PrevPage(ctx context.Context) error {
	return b.navigate(ctx, func(p PageState) int { return p.CurrentPage - 1 })
}

// NextPage moves forward one page
func (b *Browser) NextPage(ctx context.Context) error {
	return b.navigate(ctx, func(p PageState) int { return p.CurrentPage + 1 })
}

// LastPage moves to the last page. It does nothing while there are no pages.
func (b *Browser) LastPage(ctx context.Context) error {
	return b.navigate(ctx, func(p PageState) int {
		if p.TotalPages() == 0 {
			return p.CurrentPage
		}
		return p.TotalPages()
	})
}

// SetViewMode switches between card and list layout without fetching
func (b *Browser) SetViewMode(mode ViewMode) error {
	if _, err := ParseViewMode(string(mode)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.ViewMode = mode
	return nil
}

// State returns the user's current choices
func (b *Browser) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// View returns a snapshot for rendering
func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.pageState()
	v := View{
		Status:        b.status,
		Filters:       b.state.Filters,
		Search:        b.state.Search,
		Sort:          b.state.Sort,
		ViewMode:      b.state.ViewMode,
		TotalReported: b.totalReported,
		ScrollToTop:   b.scrollToTop,
		Pagination: Pagination{
			CurrentPage:  p.CurrentPage,
			ItemsPerPage: p.ItemsPerPage,
			TotalItems:   p.TotalItems,
			TotalPages:   p.TotalPages(),
			StartIndex:   p.StartIndex(),
			EndIndex:     p.EndIndex(),
			HasPrev:      p.HasPrev(),
			HasNext:      p.HasNext(),
		},
		PagePicker: PagePicker(p.CurrentPage, p.TotalPages()),
	}
	switch b.status {
	case StatusReady:
		v.Records = b.records
		v.Aggregations = b.aggregations
	case StatusFailed:
		v.Reason = FetchErrorReason
	}
	return v
}

// pageState must be called with mu held
func (b *Browser) pageState() PageState {
	return PageState{
		CurrentPage:  b.state.Page,
		ItemsPerPage: b.state.PageSize,
		TotalItems:   b.totalItems,
	}
}

// navigate moves to the page chosen by target. Once a total has been seen the target is
// clamped to the pages that exist.
func (b *Browser) navigate(ctx context.Context, target func(PageState) int) error {
	return b.update(ctx, true, func(s *State) bool {
		p := b.pageState()
		n := max(target(p), 1)
		if b.totalKnown {
			n = p.Clamp(n)
		}
		if n == s.Page {
			return false
		}
		s.Page = n
		return true
	})
}

// update applies change to the state and, if it reports a change, fetches the new page
func (b *Browser) update(ctx context.Context, scroll bool, change func(*State) bool) error {
	b.mu.Lock()
	if !change(&b.state) {
		b.mu.Unlock()
		return nil
	}
	b.seq++
	seq := b.seq
	b.status = StatusLoading
	b.scrollToTop = scroll
	s := b.state
	b.mu.Unlock()

	params := Compose(s.Filters, s.Search, s.Sort, s.Page, s.PageSize)
	resp, err := b.searcher.Search(ctx, params)
	return b.apply(ctx, seq, params, resp, err)
}

// apply stores the outcome of fetch seq if it is still the latest. Records, aggregations,
// total and status change together.
func (b *Browser) apply(ctx context.Context, seq uint64, params QueryParameters, resp Response, err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	logData := log.Data{"page": params.Page(), "size": params.Size(), "fetch": seq}

	if seq != b.seq {
		staleResponses.Inc()
		logData["latest_fetch"] = b.seq
		log.Info(ctx, "dropping superseded search response", logData)
		return ErrSuperseded
	}

	if err != nil {
		b.status = StatusFailed
		b.failure = err
		fetchesApplied.WithLabelValues("failed").Inc()
		logData["kind"] = errorKind(err)
		log.Error(ctx, "failed to fetch datasets", err, logData)
		return err
	}

	b.records = resp.Results
	b.aggregations = NormalizeAll(resp.Aggregations)
	if resp.Total != nil {
		b.totalItems = max(*resp.Total, 0)
		b.totalReported = true
	} else {
		b.totalItems = (max(params.Page(), 1)-1)*params.Size() + len(resp.Results)
		b.totalReported = false
		missingTotals.Inc()
		logData["estimated_total"] = b.totalItems
		log.Warn(ctx, "search response has no total, estimating from page", logData)
	}
	b.totalKnown = true
	b.status = StatusReady
	b.failure = nil
	fetchesApplied.WithLabelValues("ready").Inc()
	return nil
}

// Err returns the error of the latest fetch if it failed
func (b *Browser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failure
}
