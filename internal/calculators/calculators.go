// Package calculators implements the per-domain data calculators. Each
// calculator prefers its live upstream source and degrades to a local
// computation when the source fails; purely local domains never touch
// the network. Every answer is wrapped in a SourceResult carrying its
// provenance.
package calculators

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"skybrief/internal/config"
	"skybrief/internal/logger"
	"skybrief/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// Calculators bundles the domain calculators behind one shared HTTP
// client. Transient upstream errors get a single retry; anything beyond
// that falls through to the local path.
type Calculators struct {
	client *resty.Client
	parser *gofeed.Parser
	cfg    *config.Config
	log    *logger.Logger
}

// New creates the calculator set from service configuration.
func New(cfg *config.Config) *Calculators {
	client := resty.New()
	client.SetTimeout(time.Duration(cfg.FetchTimeoutSeconds) * time.Second)
	client.SetRetryCount(1)
	client.SetRetryWaitTime(500 * time.Millisecond)

	return &Calculators{
		client: client,
		parser: gofeed.NewParser(),
		cfg:    cfg,
		log:    logger.GetGlobalLogger().WithComponent("calculators"),
	}
}

// getJSON fetches url with query params and unmarshals the body into out.
func (c *Calculators) getJSON(ctx context.Context, url string, params map[string]string, out interface{}) error {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(url)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("%s returned status %d: %w", url, resp.StatusCode(), errBadStatus)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("parsing %s response: %w: %v", url, errBadPayload, err)
	}
	return nil
}

var (
	errBadStatus  = errors.New("unexpected status")
	errBadPayload = errors.New("malformed payload")
)

// failureReason maps a fetch error to a provenance reason code.
func failureReason(err error) string {
	switch {
	case errors.Is(err, errBadStatus):
		return models.ReasonHTTPStatus
	case errors.Is(err, errBadPayload):
		return models.ReasonBadPayload
	case errors.Is(err, context.DeadlineExceeded):
		return models.ReasonTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.ReasonTimeout
	}
	return models.ReasonHTTPStatus
}
