// Package api is the HTTP client for the OMenu backend: remote store
// CRUD for profile, menu books, UI state, draft and extras, plus the
// long-running AI generation endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CRUD calls are quick; generation calls wait on the AI service.
	crudTimeout       = 10 * time.Second
	generationTimeout = 2 * time.Minute

	tokenLifetime = 5 * time.Minute
	tokenAudience = "omenu-api"
)

// Client talks to the OMenu API server.
type Client struct {
	baseURL    string
	authSecret []byte
	httpClient *http.Client
	genClient  *http.Client
}

// NewClient creates an API client. authSecret may be empty when the
// server runs without authentication.
func NewClient(baseURL, authSecret string) *Client {
	return &Client{
		baseURL:    baseURL,
		authSecret: []byte(authSecret),
		httpClient: &http.Client{Timeout: crudTimeout},
		genClient:  &http.Client{Timeout: generationTimeout},
	}
}

// bearerToken mints a short-lived HS256 token for one request.
func (c *Client) bearerToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
		"aud": tokenAudience,
	})
	return token.SignedString(c.authSecret)
}

// do issues a JSON request and decodes the response into out (when out
// is non-nil). Failures map onto the timeout/unreachable/server error
// taxonomy.
func (c *Client) do(ctx context.Context, client *http.Client, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(c.authSecret) > 0 {
		token, err := c.bearerToken()
		if err != nil {
			return fmt.Errorf("failed to sign auth token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return classifyTransportError(c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		fallback := resp.Status
		return &ServerError{Status: resp.StatusCode, Message: errorMessage(respBody, fallback)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func classifyTransportError(baseURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{}
	}
	return &UnreachableError{BaseURL: baseURL, Err: err}
}
