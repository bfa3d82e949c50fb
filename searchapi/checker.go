package searchapi

import (
	"context"
	"net/http"

	"github.com/ONSdigital/dp-frontend-catalogue-controller/catalogue"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/pkg/errors"
)

const msgHealthy = "search api is ok"

// healthParams asks for the smallest page the API will serve
var healthParams = catalogue.QueryParameters{"page": "1", "size": "1"}

// Checker calls the search endpoint for a single dataset and updates the provided CheckState
func (c *Client) Checker(ctx context.Context, state *healthcheck.CheckState) error {
	_, err := c.Search(ctx, healthParams)
	if err == nil {
		return state.Update(healthcheck.StatusOK, msgHealthy, http.StatusOK)
	}

	log.Warn(ctx, "search api health check failed", log.Data{"error": err.Error()})

	code := 0
	var statusErr *ErrInvalidSearchAPIResponse
	if errors.As(err, &statusErr) {
		code = statusErr.Code()
	}
	if code >= http.StatusInternalServerError || code == 0 {
		return state.Update(healthcheck.StatusCritical, err.Error(), code)
	}
	return state.Update(healthcheck.StatusWarning, err.Error(), code)
}
