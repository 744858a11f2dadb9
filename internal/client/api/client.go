// Package api is the HTTP client for the DevHive identity endpoints.
// It is the single place where the session token is attached to a request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// authHeader carries the session token; must match the server's header name
const authHeader = "x-auth-token"

// Client represents an HTTP client for the DevHive API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// Identity is the server's view of the authenticated user
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// ValidationError is a 400 with one or more field-level messages
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// AuthError is a 401: the presented token was missing, invalid, or expired
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string {
	return e.Msg
}

// ServerError is any other non-2xx response
type ServerError struct {
	Status int
	Msg    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.Status, e.Msg)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and returns a session token
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp tokenResponse
	err := c.postJSON(ctx, "/identity/register", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Login verifies credentials and returns a session token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.postJSON(ctx, "/identity/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Me resolves a token into the identity behind it
func (c *Client) Me(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/identity/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.attachToken(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &identity, nil
}

// attachToken is the one place the credential is put on the wire
func (c *Client) attachToken(req *http.Request, token string) {
	req.Header.Set(authHeader, token)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into a typed error
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var fields struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &fields); err == nil && len(fields.Errors) > 0 {
		msgs := make([]string, 0, len(fields.Errors))
		for _, e := range fields.Errors {
			msgs = append(msgs, e.Msg)
		}
		return &ValidationError{Messages: msgs}
	}

	var single struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.Msg != "" {
		if resp.StatusCode == http.StatusUnauthorized {
			return &AuthError{Msg: single.Msg}
		}
		return &ServerError{Status: resp.StatusCode, Msg: single.Msg}
	}

	return &ServerError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(body))}
}
