// Package clerk is a read-only client for the Clerk Backend API. It implements
// identity.Directory so the rest of the CLI never sees HTTP.
package clerk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/tailscale-portfolio/clerkcli/internal/identity"
)

const (
	// DefaultBaseURL is the Clerk Backend API root.
	DefaultBaseURL = "https://api.clerk.com/v1"

	// MaxPageSize is the largest limit Clerk accepts on list endpoints.
	MaxPageSize = 500

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// Option configures the Client.
type Option func(c *Client)

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithHTTPClient configures the HTTP client whose transport carries requests.
// Its Timeout is kept; the secret key is layered on top of its Transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.base = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPageSize sets how many users are requested per page when listing.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= MaxPageSize {
			c.pageSize = n
		}
	}
}

// Client calls the Clerk Backend API with a secret key.
type Client struct {
	baseURL  string
	timeout  time.Duration
	pageSize int

	base       *http.Client
	httpClient *http.Client
}

var _ identity.Directory = (*Client)(nil)

// New builds a Client presenting secretKey as a bearer token on every request.
func New(secretKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("clerk: secret key is required")
	}

	c := &Client{
		baseURL:  DefaultBaseURL,
		timeout:  defaultTimeout,
		pageSize: MaxPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.base
	if base == nil {
		base = &http.Client{Timeout: c.timeout}
	}
	authed := *base
	authed.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: secretKey, TokenType: "Bearer"}),
		Base:   base.Transport,
	}
	c.httpClient = &authed

	return c, nil
}

// GetOrganization fetches a single organization by ID or slug.
func (c *Client) GetOrganization(ctx context.Context, id string) (*identity.Organization, error) {
	var org identity.Organization
	if err := c.get(ctx, "/organizations/"+url.PathEscape(id), nil, &org); err != nil {
		return nil, fmt.Errorf("clerk: get organization %s: %w", id, err)
	}
	return &org, nil
}

// GetUser fetches a single user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*identity.User, error) {
	var user identity.User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return nil, fmt.Errorf("clerk: get user %s: %w", id, err)
	}
	return &user, nil
}

// ListUsers lists users matching the filter. With a zero filter.Limit it walks
// every page, starting at filter.Offset, until Clerk returns a short page; a
// failure on any page fails the whole listing.
func (c *Client) ListUsers(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	if filter.Limit > 0 {
		users, err := c.listPage(ctx, filter, filter.Limit, filter.Offset)
		if err != nil {
			return nil, fmt.Errorf("clerk: list users: %w", err)
		}
		return users, nil
	}

	var all []identity.User
	offset := filter.Offset
	for {
		page, err := c.listPage(ctx, filter, c.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("clerk: list users at offset %d: %w", offset, err)
		}
		all = append(all, page...)
		if len(page) < c.pageSize {
			return all, nil
		}
		offset += len(page)
	}
}

func (c *Client) listPage(ctx context.Context, filter identity.UserFilter, limit, offset int) ([]identity.User, error) {
	query := url.Values{}
	for _, orgID := range filter.OrganizationIDs {
		query.Add("organization_id", orgID)
	}
	if filter.OrderBy != "" {
		query.Set("order_by", filter.OrderBy)
	}
	query.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	var users []identity.User
	if err := c.get(ctx, "/users", query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return newAPIError(res.StatusCode, body)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
