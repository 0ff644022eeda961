// Package capacities is a thin typed facade over the Capacities HTTP API.
//
// Every operation issues exactly one HTTP call with a bearer credential,
// reads the response body once, and converts every failure into a
// classified domain.ToolError. Responses are returned as decoded JSON
// without further transformation: no caching, no retries, no coercion.
package capacities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wavilikhin/capacities-mcp/internal/domain"
)

// Endpoint paths of the documented Capacities API.
const (
	endpointSpaces          = "/spaces"
	endpointSpaceInfo       = "/space-info"
	endpointSearch          = "/search"
	endpointSaveWeblink     = "/save-weblink"
	endpointSaveToDailyNote = "/save-to-daily-note"
)

// Client calls the Capacities API on behalf of the tool handlers.
type Client struct {
	httpClient *http.Client
	host       string
	token      string
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewClient creates a Client for the given API host and bearer token.
func NewClient(httpClient *http.Client, host, token string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		host:       host,
		token:      token,
		logger:     logger.With("component", "capacities_client"),
		tracer:     otel.Tracer("capacities-mcp/capacities"),
	}
}

// ListSpaces fetches all spaces visible to the token.
func (c *Client) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	var resp domain.SpacesResponse
	if err := c.do(ctx, http.MethodGet, endpointSpaces, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Spaces, nil
}

// SpaceInfo fetches the structure metadata of one space.
func (c *Client) SpaceInfo(ctx context.Context, spaceID string) ([]domain.Structure, error) {
	query := url.Values{"spaceid": []string{spaceID}}
	var resp domain.SpaceInfoResponse
	if err := c.do(ctx, http.MethodGet, endpointSpaceInfo, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Structures, nil
}

// searchRequest is the body of POST /search.
type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
	SpaceID    string `json:"spaceId"`
}

// Search performs a keyword lookup in one space. An empty or
// whitespace-only term is rejected here, before any network call: the API
// requires non-empty text and the round trip would be wasted.
func (c *Client) Search(ctx context.Context, searchTerm, spaceID string) ([]domain.SearchResult, error) {
	if strings.TrimSpace(searchTerm) == "" {
		return nil, domain.NewValidationError(
			"search term is empty",
			"Provide non-empty search text; the Capacities search API has no browse-all mode.",
		)
	}
	body := searchRequest{SearchTerm: searchTerm, SpaceID: spaceID}
	var resp domain.SearchResponse
	if err := c.do(ctx, http.MethodPost, endpointSearch, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SaveWeblink saves a web link into a space. The created object is returned
// as decoded JSON, untransformed.
func (c *Client) SaveWeblink(ctx context.Context, req domain.SaveWeblinkRequest) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodPost, endpointSaveWeblink, nil, req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SaveToDailyNote appends markdown text to today's daily note in a space.
func (c *Client) SaveToDailyNote(ctx context.Context, req domain.SaveToDailyNoteRequest) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodPost, endpointSaveToDailyNote, nil, req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// do issues a single HTTP request and decodes the JSON response into out.
// All failure paths come back as classified ToolErrors; the response body
// is consumed exactly once and appended to remote error messages for
// diagnostics.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	log := c.logger.With(slog.String("method", method), slog.String("endpoint", endpoint))

	ctx, span := c.tracer.Start(ctx, method+" "+endpoint, trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("capacities.endpoint", endpoint),
	))
	defer span.End()

	baseURL, err := url.Parse(c.host)
	if err != nil {
		return domain.NewConfigError(
			fmt.Sprintf("invalid API host %q: %v", c.host, err),
			"Fix CAPACITIES_API_HOST to a valid URL, or unset it to use the default.",
		)
	}
	baseURL.Path = path.Join(baseURL.Path, endpoint)
	if len(query) > 0 {
		baseURL.RawQuery = query.Encode()
	}

	var requestBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return domain.Classify(fmt.Errorf("failed to marshal request body for %s: %w", endpoint, err))
		}
		requestBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL.String(), requestBody)
	if err != nil {
		return domain.Classify(fmt.Errorf("failed to create request for %s %s: %w", method, endpoint, err))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Request failed before a response arrived.", slog.Any("error", err))
		span.RecordError(err)
		return domain.NewNetworkError(fmt.Sprintf("request to %s %s failed: %v", method, endpoint, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return domain.NewNetworkError(fmt.Sprintf("failed to read response from %s %s: %v", method, endpoint, err))
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		hints := domain.RetryHints{
			RetryAfter:     resp.Header.Get("Retry-After"),
			RateLimitReset: resp.Header.Get("X-RateLimit-Reset"),
		}
		toolErr := domain.FromResponse(method, endpoint, resp.StatusCode, strings.TrimSpace(string(respBody)), hints)
		log.Warn("Received non-success status.", slog.Int("status", resp.StatusCode))
		span.RecordError(toolErr)
		return toolErr
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		// The documented endpoints all return bodies; a silent empty 2xx is
		// anomalous and must not look like an empty success.
		return domain.NewEmptyBodyError(method, endpoint)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return domain.NewDecodeError(method, endpoint, err)
	}

	log.Debug("Request completed.", slog.Int("status", resp.StatusCode), slog.Int("body_bytes", len(respBody)))
	return nil
}
