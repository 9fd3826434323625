// Package api is the HTTP client for the profile API.
//
// Every endpoint answers with a JSON Result regardless of HTTP status, so a
// 4xx with a JSON body is returned as a Result, not an error. Errors are
// reserved for transport failures (ErrUnavailable) and bodies that are not
// a JSON object (ErrBadResponse).
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

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/google/uuid"
)

// maxBody caps how much of a response is read.
const maxBody = 1 << 20

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	newID   func() string
}

// New returns a client for baseURL. timeout bounds each call; zero leaves
// calls bounded only by the caller's context.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
		newID:   uuid.NewString,
	}
}

// UpdateProfile sends PUT /users/edit authorised by token.
func (c *Client) UpdateProfile(ctx context.Context, token string, upd ProfileUpdate) (*Result, error) {
	return c.do(ctx, http.MethodPut, "/users/edit", token, upd)
}

// Login sends POST /users/login. A successful result carries Token and User.
func (c *Client) Login(ctx context.Context, email, password string) (*Result, error) {
	return c.do(ctx, http.MethodPost, "/users/login", "", loginRequest{Email: email, Password: password})
}

// Details fetches the user that token belongs to.
func (c *Client) Details(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/users/details", token, nil)
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	return c.do(ctx, http.MethodPost, "/users/register", "", req)
}

// Ping reports whether GET /health answers 200.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return mapError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*Result, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, c.newID())
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, mapError(err)
	}

	// A JSON null decodes without error but carries no result.
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: status %d: null body", ErrBadResponse, resp.StatusCode)
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("%w: status %d: %w", ErrBadResponse, resp.StatusCode, err)
	}
	return &res, nil
}
