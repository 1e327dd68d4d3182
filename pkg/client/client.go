// Package client talks to the users API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/khoahotran/rentredi/internal/domain/user"
)

const DefaultTimeout = 15 * time.Second

// UserPayload is the body of create and update calls. Empty fields are omitted.
type UserPayload struct {
	Name    string `json:"name,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// APIError is a non-2xx answer. Message carries the server's "error" field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{http: c}
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []user.User{}
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, p UserPayload) (user.User, error) {
	var u user.User
	err := c.do(ctx, http.MethodPost, "/users", p, &u)
	return u, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, p UserPayload) (user.User, error) {
	var u user.User
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), p, &u)
	return u, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// Health calls GET /health and reports whether the API is reachable.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return toAPIError(resp.StatusCode(), resp.Body())
	}
	if result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func toAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return &APIError{StatusCode: status, Message: payload.Error}
	}
	if text := http.StatusText(status); text != "" {
		return &APIError{StatusCode: status, Message: text}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("Request failed with status %d", status)}
}
