// Package github implements the repository search provider consumed by the
// aggregator. The client is constructed explicitly with immutable
// configuration; there is no package-level shared instance.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/buildinfo"
	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

const acceptHeader = "application/vnd.github.v3+json"

// Sort orders accepted by the search endpoint.
const (
	SortStars   = "stars"
	SortUpdated = "updated"
)

// Config carries the immutable client configuration.
type Config struct {
	// BaseURL defaults to the public GitHub API.
	BaseURL string
	// Token is an optional bearer token. Empty degrades to the
	// unauthenticated, lower-rate-limit tier.
	Token string
	// HTTPClient defaults to a client with domain.DefaultProviderTimeout.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to a GitHub-style repository search API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = domain.DefaultProviderBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultProviderTimeout}
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		client:  httpClient,
		logger:  logger.Named("github"),
	}
}

// SearchRepositories runs one search against /search/repositories. A
// 403/429 response maps to domain.ErrRateLimited, other non-2xx statuses to
// CodeUnavailable, and an undecodable 2xx body to domain.ErrMalformedResponse.
// A well-formed empty result is returned as an empty slice, not an error;
// the entry-point fallback policy lives in the aggregator.
func (c *Client) SearchRepositories(ctx context.Context, query, sort string, perPage int) ([]Repository, error) {
	const op = "github.SearchRepositories"

	if perPage <= 0 || perPage > domain.DefaultProviderPerPage {
		perPage = domain.DefaultProviderPerPage
	}
	params := url.Values{}
	params.Set("q", query)
	if sort != "" {
		params.Set("sort", sort)
	}
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(perPage))

	endpoint := fmt.Sprintf("%s/search/repositories?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.E(domain.CodeInternal, op, "", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.E(domain.CodeDeadlineExceeded, op, "", err)
		}
		return nil, domain.E(domain.CodeUnavailable, op, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("search rate limited",
			zap.Int("status", resp.StatusCode),
			zap.String("remaining", resp.Header.Get("X-RateLimit-Remaining")),
		)
		return nil, domain.E(domain.CodeRateLimited, op, resp.Status, domain.ErrRateLimited)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domain.E(domain.CodeUnavailable, op, fmt.Sprintf("unexpected status: %s", resp.Status), nil)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.E(domain.CodeEmptyResult, op, "", domain.ErrMalformedResponse)
	}

	c.logger.Debug("search completed",
		zap.Int("total", body.TotalCount),
		zap.Int("items", len(body.Items)),
		zap.String("sort", sort),
	)
	return body.Items, nil
}

// GetRepository fetches a single repository by owner and name.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (Repository, error) {
	const op = "github.GetRepository"

	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(owner), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Repository{}, domain.E(domain.CodeInternal, op, "", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return Repository{}, domain.E(domain.CodeUnavailable, op, "", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return Repository{}, domain.E(domain.CodeRateLimited, op, resp.Status, domain.ErrRateLimited)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return Repository{}, domain.E(domain.CodeUnavailable, op, fmt.Sprintf("unexpected status: %s", resp.Status), nil)
	}

	var repo Repository
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return Repository{}, domain.E(domain.CodeEmptyResult, op, "", domain.ErrMalformedResponse)
	}
	return repo, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func userAgent() string {
	version := strings.TrimSpace(buildinfo.Version)
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("offsec-radar/%s", version)
}
