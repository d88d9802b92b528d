// Package hrisapi reads and writes attendance data through the upstream HRIS
// REST API instead of a local database.
package hrisapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-reconciliation/internal/config"
	"github.com/cmlabs-hris/attendance-reconciliation/internal/pkg/jwt"
	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnavailable is returned when the upstream cannot be reached or answers 5xx.
	ErrUnavailable = errors.New("hris api unavailable")
	// ErrUnexpectedResponse is returned for any other non-success answer.
	ErrUnexpectedResponse = errors.New("unexpected hris api response")
	errNotFound           = errors.New("hris api: not found")
)

// envelope mirrors the upstream's standard response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

func NewClient(cfg config.HRISAPIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{logger: logger.With(slog.String("component", "resty"))}).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(retryReads).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: logger}
}

// retryReads retries GET calls that failed in transport. Creates and updates
// are sent once: the upstream may have applied a write whose answer was lost.
func retryReads(resp *resty.Response, err error) bool {
	if err == nil || resp == nil || resp.Request == nil {
		return false
	}
	return resp.Request.Method == http.MethodGet
}

// restyLogger sends resty's own messages through slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// request prepares a call that forwards the caller's bearer token.
func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := jwt.RawTokenFromContext(ctx); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// decode checks the status and envelope of resp and unmarshals its data into out.
// A 404 answer yields errNotFound.
func (c *Client) decode(resp *resty.Response, err error, out any) error {
	if err != nil {
		c.logger.Error("hris api call failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	method, url := resp.Request.Method, resp.Request.URL
	status := resp.StatusCode()

	switch {
	case status == http.StatusNotFound:
		return errNotFound
	case status >= http.StatusInternalServerError:
		c.logger.Error("hris api returned server error",
			slog.String("method", method),
			slog.String("url", url),
			slog.Int("status_code", status),
		)
		return fmt.Errorf("%w: %s %s returned %d", ErrUnavailable, method, url, status)
	case status < 200 || status >= 300:
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrUnexpectedResponse, method, url, status, upstreamMessage(resp.Body()))
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%w: invalid body: %w", ErrUnexpectedResponse, err)
	}
	if !env.Success {
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, upstreamMessage(resp.Body()))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: invalid data: %w", ErrUnexpectedResponse, err)
	}
	return nil
}

func upstreamMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return strings.TrimSpace(string(body))
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return env.Message
}
