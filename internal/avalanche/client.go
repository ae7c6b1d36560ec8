package avalanche

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/serac-weather/serac/internal/provider"
	"github.com/serac-weather/serac/internal/provider/resilience"
)

const (
	// SourceName identifies this upstream in errors and logs.
	SourceName = "meteofrance-bra"

	// DefaultBaseURL is the Météo-France public DPBRA API.
	DefaultBaseURL = "https://public-api.meteofrance.fr/public/DPBRA/v1"

	// maxBodyBytes bounds the bulletin document size.
	maxBodyBytes = 1 << 20
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the bulletin client.
type ClientConfig struct {
	// APIKey is the Météo-France API key (required). Sent in the apikey
	// header.
	APIKey string

	// MassifID selects the massif this client fetches bulletins for.
	MassifID int

	// BaseURL overrides the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient executes requests. If nil, a resilient client with a
	// 30-second timeout is created.
	HTTPClient HTTPDoer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches avalanche bulletins for one massif.
type Client struct {
	apiKey     string
	massifID   int
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a bulletin client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{Name: SourceName})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		massifID:   cfg.MassifID,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// MassifID returns the massif this client is bound to.
func (c *Client) MassifID() int {
	return c.massifID
}

// FetchBulletin fetches and parses the massif's current bulletin.
//
// A 401/403 propagates as an auth failure (bad or expired key) and a 404
// as not-found (the massif has no bulletin infrastructure); neither is
// retried. A published document that lacks the risk element comes back
// as a bulletin with HasData=false, which is valid domain data.
func (c *Client) FetchBulletin(ctx context.Context) (Bulletin, error) {
	params := url.Values{
		"id-massif": {strconv.Itoa(c.massifID)},
		"format":    {"xml"},
	}

	reqURL := c.baseURL + "/massif/BRA?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return Bulletin{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Bulletin{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Bulletin{}, provider.NewNetworkError(SourceName, fmt.Errorf("read bulletin body: %w", err))
	}

	bulletin, err := ParseBulletin(body, c.massifID)
	if err != nil {
		return Bulletin{}, err
	}

	if !bulletin.HasData {
		c.logger.Debug().
			Int("massif_id", c.massifID).
			Msg("bulletin has no risk data, likely out of season")
	}

	return bulletin, nil
}
