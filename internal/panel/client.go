package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"strmctl/internal/config"
	"strmctl/internal/logging"
	"strmctl/internal/services"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// HTTPDoer describes the HTTP client used by Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Token is sent as a static bearer token. It wins over JWTSecret.
	Token      string
	JWTSecret  string
	JWTSubject string
	JWTTTL     time.Duration

	HTTPClient HTTPDoer
	Logger     *slog.Logger
	Now        func() time.Time
}

// Client talks to the control backend.
type Client struct {
	base      *url.URL
	http      HTTPDoer
	userAgent string
	auth      tokenSource
	logger    *slog.Logger
}

// New constructs a client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	raw, err := config.NormalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "panel", "base url", "", err)
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "panel", "base url", "", err)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		// Zero timeout keeps the transport default; requests still honour ctx.
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		base:      base,
		http:      httpClient,
		userAgent: strings.TrimSpace(opts.UserAgent),
		auth:      newTokenSource(opts),
		logger:    logging.NewComponentLogger(opts.Logger, "panel"),
	}, nil
}

// NewFromConfig builds a client from the loaded configuration.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "panel", "config", "configuration is nil", nil)
	}
	return New(Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		UserAgent:  cfg.API.UserAgent,
		Token:      cfg.Auth.Token,
		JWTSecret:  cfg.Auth.JWTSecret,
		JWTSubject: cfg.Auth.JWTSubject,
		JWTTTL:     time.Duration(cfg.Auth.JWTTTLSeconds) * time.Second,
		Logger:     logger,
	})
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	if c == nil || c.base == nil {
		return ""
	}
	return c.base.String()
}

type response struct {
	status int
	body   []byte
}

// do sends one JSON request and decodes a 2xx body into out when out is
// non-nil. Non-2xx answers become *StatusError.
func (c *Client) do(ctx context.Context, action, method, path string, body, out any) error {
	resp, err := c.send(ctx, action, method, path, body)
	if err != nil {
		return err
	}
	if resp.status < 200 || resp.status >= 300 {
		return &StatusError{Endpoint: path, StatusCode: resp.status, Body: string(resp.body)}
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return services.Wrap(services.ErrServer, action, "decode response", path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, action, method, path string, body any) (response, error) {
	if c == nil {
		return response{}, services.Wrap(services.ErrConfiguration, action, "send", "client is not configured", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
		ctx = services.WithRequestID(ctx, requestID)
	}
	ctx = services.WithEndpoint(services.WithAction(ctx, action), path)
	logger := logging.WithContext(ctx, c.logger)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return response{}, services.Wrap(services.ErrValidation, action, "encode request", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return response{}, services.Wrap(services.ErrConfiguration, action, "build request", path, err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.auth != nil {
		token, err := c.auth.Token()
		if err != nil {
			return response{}, services.Wrap(services.ErrConfiguration, action, "sign token", "", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	logger.Debug("backend request", logging.String("method", method))
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return response{}, fmt.Errorf("%s: %w", action, ctxErr)
		}
		logger.Warn("backend unreachable",
			logging.Error(err),
			logging.Alert("unavailable"),
			logging.String("impact", "request not delivered"),
		)
		return response{}, services.Wrap(services.ErrUnavailable, action, path, "", err)
	}
	defer resp.Body.Close()

	limit := int64(maxErrorBody)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		limit = 16 << 20
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return response{}, services.Wrap(services.ErrUnavailable, action, path, "read response", err)
	}
	attrs := []any{
		logging.Int("status", resp.StatusCode),
		logging.Duration("duration", time.Since(started)),
	}
	if resp.StatusCode >= 400 {
		logger.Warn("backend rejected request", append(attrs, logging.Alert("server_error"))...)
	} else {
		logger.Debug("backend response", attrs...)
	}
	return response{status: resp.StatusCode, body: data}, nil
}
