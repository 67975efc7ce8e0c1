// Package client is a typed HTTP client for the todo API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"todod/pkg/todo"
)

// RequestTimeout bounds each API call.
const RequestTimeout = 5 * time.Second

// APIError is a non-2xx response decoded from the error payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Client calls the todo API at a base URL.
type Client struct {
	base string
	http *http.Client
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{},
	}
}

// List fetches all todos in insertion order.
func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	var todos []todo.Todo
	if err := c.do(ctx, "GET", "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Create adds a new todo with the given title.
func (c *Client) Create(ctx context.Context, title string) (*todo.Todo, error) {
	var t todo.Todo
	if err := c.do(ctx, "POST", "/api/todos", map[string]string{"title": title}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces the title of the todo with the given id.
func (c *Client) Update(ctx context.Context, id int64, title string) (*todo.Todo, error) {
	var t todo.Todo
	path := fmt.Sprintf("/api/todos/%d", id)
	if err := c.do(ctx, "PUT", path, map[string]string{"title": title}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Toggle flips the completed flag of the todo with the given id.
func (c *Client) Toggle(ctx context.Context, id int64) (*todo.Todo, error) {
	var t todo.Todo
	path := fmt.Sprintf("/api/todos/%d/toggle", id)
	if err := c.do(ctx, "PATCH", path, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes the todo with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/todos/%d", id)
	return c.do(ctx, "DELETE", path, nil, nil)
}

// Status holds the aggregate counts from /api/status.
type Status struct {
	Todos     int `json:"todos"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Status fetches aggregate counts.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var s Status
	if err := c.do(ctx, "GET", "/api/status", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "GET", "/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
