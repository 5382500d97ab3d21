// Package gateway is the HTTP client for the festival registration API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gdg-garage/reso-client/internal/session"
	"golang.org/x/oauth2"
)

// AlreadyRegisteredMessage is the server message for a duplicate (user, event) registration.
const AlreadyRegisteredMessage = "Already Registered in this Event"

var (
	// ErrNoCredential is returned by DoAuth before any request is sent.
	ErrNoCredential = session.ErrNoCredential

	ErrAlreadyRegistered = errors.New("already registered")
	ErrUnauthorized      = errors.New("unauthorized")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAlreadyRegistered:
		return e.Status == http.StatusConflict && e.Message == AlreadyRegisteredMessage
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

// Requester is the subset of Client used by the rest of the module.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any) error
	DoAuth(ctx context.Context, method, path string, body, out any) error
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         oauth2.TokenSource
	debug          bool
	onUnauthorized func()
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout caps each request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

// OnUnauthorized registers a hook run whenever the server rejects the credential.
func OnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends a request, attaching the credential when one is stored, and
// decodes a JSON answer into out.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	token, _ := c.credential()
	return c.send(ctx, method, path, token, body, out)
}

// DoAuth is Do for endpoints that require a credential. Without one it fails
// locally with ErrNoCredential.
func (c *Client) DoAuth(ctx context.Context, method, path string, body, out any) error {
	token, err := c.credential()
	if err != nil {
		return err
	}
	return c.send(ctx, method, path, token, body, out)
}

func (c *Client) credential() (string, error) {
	if c.tokens == nil {
		return "", ErrNoCredential
	}
	tok, err := c.tokens.Token()
	if err != nil {
		return "", err
	}
	if tok == nil || tok.AccessToken == "" {
		return "", ErrNoCredential
	}
	return tok.AccessToken, nil
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if c.debug {
		log.Printf("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage prefers the server's own wording so it can be shown verbatim.
func errorMessage(status int, raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, msg := range []string{payload.Message, payload.Detail, payload.Title} {
			if msg != "" {
				return msg
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Something went wrong"
}

// Message renders err for a user: server messages verbatim, anything else generic.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrNoCredential) {
		return ErrNoCredential.Error()
	}
	return "Something went wrong"
}
