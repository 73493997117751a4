// Package client is a Go SDK for the unismart HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/unismart/unismart/internal/models"
)

// Client talks to a unismart server
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets the bearer token used for authenticated endpoints
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new unismart client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken replaces the bearer token, typically after Login or Register
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates an account and stores the issued token on the client
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.postJSON(ctx, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	if out.Token != "" {
		c.token = out.Token
	}
	return &out, nil
}

// Login authenticates and stores the issued token on the client
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.postJSON(ctx, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	if out.Token != "" {
		c.token = out.Token
	}
	return &out, nil
}

// Logout revokes the current token
func (c *Client) Logout(ctx context.Context) error {
	if err := c.postJSON(ctx, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Me returns the account behind the current token
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.AuthResponse
	if err := c.getJSON(ctx, "/api/auth/me", &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Recommendations returns the ranked top programs for a profile
func (c *Client) Recommendations(ctx context.Context, req models.RecommendationRequest, simulate bool) ([]*models.Recommendation, error) {
	path := "/api/recommendations"
	if simulate {
		path += "?simulate=true"
	}

	var out struct {
		Recommendations []*models.Recommendation `json:"recommendations"`
	}
	if err := c.postJSON(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return out.Recommendations, nil
}

// WhatIf compares a base profile against a hypothetical one
func (c *Client) WhatIf(ctx context.Context, req models.WhatIfRequest) (*models.WhatIfResult, error) {
	var out models.WhatIfResult
	if err := c.postJSON(ctx, "/api/what-if", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Argumentation returns the pros-and-risks view for one program.
// compoundID is "{universityID}-{programID}".
func (c *Client) Argumentation(ctx context.Context, compoundID string) (*models.Argumentation, error) {
	var out models.Argumentation
	if err := c.getJSON(ctx, "/api/argumentation/"+url.PathEscape(compoundID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Universities lists the whole catalog
func (c *Client) Universities(ctx context.Context) ([]*models.University, error) {
	var out struct {
		Universities []*models.University `json:"universities"`
	}
	if err := c.getJSON(ctx, "/api/universities", &out); err != nil {
		return nil, err
	}
	return out.Universities, nil
}

// University fetches one catalog entry
func (c *Client) University(ctx context.Context, id string) (*models.University, error) {
	var out models.University
	if err := c.getJSON(ctx, "/api/universities/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile returns the stored profile of the authenticated user
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var out struct {
		Profile models.Profile `json:"profile"`
	}
	if err := c.getJSON(ctx, "/api/user/profile", &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// UpdateProfile merges the given changes into the stored profile
func (c *Client) UpdateProfile(ctx context.Context, req models.ProfileUpdateRequest) (*models.Profile, error) {
	var out struct {
		Profile models.Profile `json:"profile"`
	}
	if err := c.putJSON(ctx, "/api/user/profile", req, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// SaveFavorites replaces the favorites list
func (c *Client) SaveFavorites(ctx context.Context, favorites []string) error {
	return c.postJSON(ctx, "/api/user/favorites", models.FavoritesRequest{Favorites: favorites}, nil)
}

// Favorites returns the stored favorites list
func (c *Client) Favorites(ctx context.Context) ([]string, error) {
	var out struct {
		Favorites []string `json:"favorites"`
	}
	if err := c.getJSON(ctx, "/api/user/favorites", &out); err != nil {
		return nil, err
	}
	return out.Favorites, nil
}

// CreateRoadmap generates and stores an admission roadmap
func (c *Client) CreateRoadmap(ctx context.Context, req models.RoadmapRequest) ([]*models.RoadmapItem, error) {
	var out struct {
		Roadmap []*models.RoadmapItem `json:"roadmap"`
	}
	if err := c.postJSON(ctx, "/api/roadmap", req, &out); err != nil {
		return nil, err
	}
	return out.Roadmap, nil
}

// Roadmap returns the stored roadmap
func (c *Client) Roadmap(ctx context.Context) ([]*models.RoadmapItem, error) {
	var out struct {
		Roadmap []*models.RoadmapItem `json:"roadmap"`
	}
	if err := c.getJSON(ctx, "/api/roadmap", &out); err != nil {
		return nil, err
	}
	return out.Roadmap, nil
}

// Health checks server liveness
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := c.doRequest(ctx, "GET", path, nil)
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, "POST", path, in, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.sendJSON(ctx, "PUT", path, in, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeData(resp, out)
}

// decodeData unwraps the server's {success, data, error} envelope
func decodeData(resp []byte, out interface{}) error {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(resp, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return fmt.Errorf("api error %s: %s", envelope.Error.Code, envelope.Error.Message)
		}
		return fmt.Errorf("api error: request failed")
	}

	if out == nil || envelope.Data == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
