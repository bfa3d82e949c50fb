package searchapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
)

// maxBodyLengthToLog is the maximum length of an unexpected response body that is kept for logging
const maxBodyLengthToLog = 1 << 10

// ErrInvalidSearchAPIResponse is returned when the search API does not respond with a 2xx status
type ErrInvalidSearchAPIResponse struct {
	actualCode int
	uri        string
	body       string
}

// NewSearchAPIResponse creates an error response, keeping the start of the body for diagnostics
func NewSearchAPIResponse(resp *http.Response, uri string) *ErrInvalidSearchAPIResponse {
	var body string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLengthToLog))
		body = string(b)
	}
	return &ErrInvalidSearchAPIResponse{
		actualCode: resp.StatusCode,
		uri:        uri,
		body:       body,
	}
}

// Error should be called by the user to print out the stringified version of the error
func (e ErrInvalidSearchAPIResponse) Error() string {
	return fmt.Sprintf("invalid response from search api - should be: 2xx, got: %d, path: %s, body: %s",
		e.actualCode,
		e.uri,
		e.body,
	)
}

// Code returns the status code received from the search API if an error is returned
func (e ErrInvalidSearchAPIResponse) Code() int {
	return e.actualCode
}

// Unwrap classifies every bad status as a network failure
func (e ErrInvalidSearchAPIResponse) Unwrap() error {
	return catalogue.ErrNetwork
}

// ErrSearchAPIUnreachable is returned when the request to the search API could not be made or
// its body could not be read
type ErrSearchAPIUnreachable struct {
	uri string
	err error
}

func (e *ErrSearchAPIUnreachable) Error() string {
	return fmt.Sprintf("failed to reach search api at %s: %v", e.uri, e.err)
}

// Unwrap returns both the network classification and the underlying cause
func (e *ErrSearchAPIUnreachable) Unwrap() []error {
	return []error{catalogue.ErrNetwork, e.err}
}
