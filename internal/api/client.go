// Package api is the HTTP client for the task service.
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
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"example.com/taskdesk/internal/repository"
	"example.com/taskdesk/internal/session"
)

const (
	DefaultBaseURL   = "http://localhost:8081/api"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "taskdesk"

	maxBodyBytes = 4 << 20
)

// Authenticator supplies the bearer token and reacts to auth failures.
// *session.Monitor implements it.
type Authenticator interface {
	Preflight(ctx context.Context) (string, error)
	HandleStatus(token string, status int) bool
	Begin(sess session.Session) error
	End() error
}

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	auth      Authenticator
	log       *logrus.Entry
}

var (
	_ repository.TaskRepository = (*Client)(nil)
	_ repository.ListRepository = (*Client)(nil)
	_ repository.AuthRepository = (*Client)(nil)
)

type Option func(*Client)

// WithHTTPClient replaces the transport. Its Timeout is overwritten by
// Config.Timeout when that is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Client) { c.log = log }
}

func New(cfg Config, auth Authenticator, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{},
		auth:      auth,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Timeout = cfg.Timeout
	c.log = c.log.WithField("component", "api")
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method string
	path   string
	in     any
	out    any
	// public calls skip the token checks on both sides of the request.
	public bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	token := ""
	if !cl.public && c.auth != nil {
		t, err := c.auth.Preflight(ctx)
		if err != nil {
			return preflightError(err)
		}
		token = t
	}

	var body io.Reader
	if cl.in != nil {
		b, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method":     cl.method,
			"path":       cl.path,
			"request_id": requestID,
		}).WithError(err).Debug("request failed")
		return transportError(err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(err)
	}

	c.log.WithFields(logrus.Fields{
		"method":     cl.method,
		"path":       cl.path,
		"status":     resp.StatusCode,
		"latency":    time.Since(start),
		"request_id": requestID,
	}).Debug("request done")

	if resp.StatusCode >= http.StatusBadRequest {
		if !cl.public && c.auth != nil {
			c.auth.HandleStatus(token, resp.StatusCode)
		}
		return &Error{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: messageFrom(raw),
		}
	}
	if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, cl.out); err != nil {
		return &Error{Kind: ErrServer, Status: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: ErrTimeout, Err: err}
	}
	return &Error{Kind: ErrNetwork, Err: err}
}

func preflightError(err error) error {
	switch {
	case errors.Is(err, session.ErrMalformedToken):
		return &Error{Kind: ErrMalformedToken, Err: err}
	case errors.Is(err, session.ErrTokenExpired):
		return &Error{Kind: ErrUnauthorized, Err: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return transportError(err)
	default:
		return fmt.Errorf("preflight: %w", err)
	}
}
