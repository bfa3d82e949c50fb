package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	dphttp "github.com/ONSdigital/dp-net/http"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const service = "search-api"

// searchPath is the dataset search endpoint relative to the API root
const searchPath = "/api/search/dataset/"

// Getter is the part of an HTTP client the search client needs
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Client is a search API client
type Client struct {
	cli     Getter
	baseURL string
}

// New creates a new instance of Client with a given search API url
func New(baseURL string, cli Getter) *Client {
	return &Client{
		cli:     cli,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewHTTPClient returns a dp-net client that never retries. A failed fetch is reported to the
// user, who decides whether to try again.
func NewHTTPClient(timeout time.Duration) dphttp.Clienter {
	cli := dphttp.NewClient()
	cli.SetMaxRetries(0)
	cli.SetTimeout(timeout)
	return cli
}

// URL returns the search URL for the given parameters
func (c *Client) URL(params catalogue.QueryParameters) string {
	uri := c.baseURL + searchPath
	if q := params.Encode(); q != "" {
		uri += "?" + q
	}
	return uri
}

// searchResponse is the body of a search API response before normalisation
type searchResponse struct {
	Results      *[]catalogue.Record `json:"results"`
	Aggregations json.RawMessage     `json:"aggregations"`
	Total        json.RawMessage     `json:"total"`
}

// Search requests one page of datasets
func (c *Client) Search(ctx context.Context, params catalogue.QueryParameters) (catalogue.Response, error) {
	uri := c.URL(params)

	resp, err := c.cli.Get(ctx, uri)
	if err != nil {
		return catalogue.Response{}, &ErrSearchAPIUnreachable{uri: uri, err: err}
	}
	defer closeResponseBody(ctx, resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return catalogue.Response{}, NewSearchAPIResponse(resp, uri)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return catalogue.Response{}, &ErrSearchAPIUnreachable{uri: uri, err: err}
	}

	var body searchResponse
	if err := sonic.Unmarshal(b, &body); err != nil {
		return catalogue.Response{}, errors.Wrapf(catalogue.ErrMalformedResponse, "decoding %s: %v", uri, err)
	}
	if body.Results == nil {
		return catalogue.Response{}, errors.Wrapf(catalogue.ErrMalformedResponse, "no results in response from %s", uri)
	}

	return catalogue.Response{
		Results:      *body.Results,
		Aggregations: aggregations(ctx, body.Aggregations),
		Total:        total(body.Total),
	}, nil
}

// aggregations splits the aggregations object per category. Anything that is not an object
// is treated as no aggregations.
func aggregations(ctx context.Context, raw json.RawMessage) map[string]json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var perCategory map[string]json.RawMessage
	if err := sonic.Unmarshal(raw, &perCategory); err != nil {
		log.Warn(ctx, "ignoring unreadable aggregations in search response", log.Data{"error": err.Error()})
		return nil
	}
	return perCategory
}

// total reads a reported total, either a number or an object with a value field. Negative
// or out of range totals count as unreported.
func total(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var n json.Number
	if err := sonic.Unmarshal(raw, &n); err == nil {
		return reportedTotal(n)
	}

	var wrapped struct {
		Value *json.Number `json:"value"`
	}
	if err := sonic.Unmarshal(raw, &wrapped); err == nil && wrapped.Value != nil {
		return reportedTotal(*wrapped.Value)
	}
	return nil
}

func reportedTotal(n json.Number) *int {
	v, err := n.Float64()
	if err != nil || v < 0 || v > math.MaxInt32 {
		return nil
	}
	t := int(v)
	return &t
}

// closeResponseBody closes the response body and logs an error if unsuccessful
func closeResponseBody(ctx context.Context, resp *http.Response) {
	if resp != nil && resp.Body != nil {
		if err := resp.Body.Close(); err != nil {
			log.Error(ctx, "error closing http response body", err, log.Data{"service": service})
		}
	}
}
