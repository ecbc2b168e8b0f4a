// Package actors talks to the actor-ranking API.
package actors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"actorrank/internal/domain"
	"actorrank/internal/metrics"
)

// maxErrorBody caps how much of a failed response ends up in the error
const maxErrorBody = 512

// Fetcher returns the ranked actors for a query
type Fetcher interface {
	GetActors(ctx context.Context, query string) ([]domain.ActorRecord, error)
}

// Invalidator is implemented by fetchers that keep results between calls
type Invalidator interface {
	Invalidate(query string)
}

// Client is the HTTP implementation of Fetcher
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a client for the API at baseURL.
// The timeout bounds a whole request; 0 means none.
func NewClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		log: log,
	}
}

// GetActors queries /actors?query=<query>. An empty query is sent as is.
func (c *Client) GetActors(ctx context.Context, query string) ([]domain.ActorRecord, error) {
	const op = "actors.Client.GetActors"

	endpoint := fmt.Sprintf("%s/actors?query=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.WithFields(logrus.Fields{"query": query, "request_id": requestID})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIFailures.WithLabelValues("transport").Inc()
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.APIFailures.WithLabelValues("status").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%s: %w: %d, response: %s", op, domain.ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var actors []domain.ActorRecord
	if err := json.NewDecoder(resp.Body).Decode(&actors); err != nil {
		metrics.APIFailures.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	if actors == nil {
		actors = []domain.ActorRecord{}
	}

	log.WithField("count", len(actors)).Debug("actors received")
	return actors, nil
}
