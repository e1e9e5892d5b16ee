package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// ErrUnexpectedStatus the origin returned a non-2xx response.
var ErrUnexpectedStatus = errors.New("pokeapi: unexpected status")

// Client consumes the PokeAPI.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the origin endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a PokeAPI client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches one page of the pokemon index. A limit of 0 returns only
// the total count.
func (c *Client) List(ctx context.Context, limit, offset int) (*ListResponse, error) {
	url := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)
	var out ListResponse
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Detail fetches the full record for one pokemon id.
func (c *Client) Detail(ctx context.Context, id int) (*Detail, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, id)
	var out Detail
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Species follows the species URL from a detail record.
func (c *Client) Species(ctx context.Context, url string) (*Species, error) {
	var out Species
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EvolutionChain follows the chain URL from a species record.
func (c *Client) EvolutionChain(ctx context.Context, url string) (*EvolutionChain, error) {
	var out EvolutionChain
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchRaw performs a GET and returns body bytes and content type. Used for
// sprite downloads where the payload is binary.
func (c *Client) FetchRaw(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	body, _, err := c.FetchRaw(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

// IDFromURL extracts the numeric id from a resource URL such as
// "https://pokeapi.co/api/v2/pokemon/25/".
func IDFromURL(url string) (int, error) {
	trimmed := strings.TrimRight(url, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0, fmt.Errorf("pokeapi: malformed resource url %q", url)
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("pokeapi: malformed resource url %q: %w", url, err)
	}
	return id, nil
}
