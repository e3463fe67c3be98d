// Package remote talks to the REST task collection the client mirrors.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	goerrors "github.com/go-errors/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Joseda-hg/lazymemo/internal/model"
)

const requestIDHeader = "X-Request-Id"

// ErrEmptyResponse is returned when the store answers a request that expects a
// task with a 2xx status and no body.
var ErrEmptyResponse = errors.New("empty response body")

// ErrMissingID is returned when a created task comes back without an id.
var ErrMissingID = errors.New("task has no id")

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, body)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if !strings.HasSuffix(trimmed, "/") {
		trimmed += "/"
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (c *Client) Create(ctx context.Context, content string) (model.Task, error) {
	payload := struct {
		Content string `json:"content"`
	}{Content: content}

	var created model.Task
	if err := c.do(ctx, http.MethodPost, c.baseURL, payload, &created); err != nil {
		return model.Task{}, err
	}
	if created.ID.IsZero() {
		return model.Task{}, goerrors.WrapPrefix(ErrMissingID, "decode POST response", 0)
	}
	return created, nil
}

// Update sends the full task and returns the store's canonical copy.
func (c *Client) Update(ctx context.Context, task model.Task) (model.Task, error) {
	if task.ID.IsZero() {
		return model.Task{}, fmt.Errorf("update task: missing id")
	}

	var updated model.Task
	if err := c.do(ctx, http.MethodPatch, c.taskURL(task.ID), task, &updated); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id model.ID) error {
	if id.IsZero() {
		return fmt.Errorf("delete task: missing id")
	}
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, nil)
}

func (c *Client) taskURL(id model.ID) string {
	return c.baseURL + url.PathEscape(id.String())
}

func (c *Client) do(ctx context.Context, method, target string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := sonic.Marshal(payload)
		if err != nil {
			return goerrors.WrapPrefix(err, "encode "+method+" body", 0)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return goerrors.WrapPrefix(err, "build "+method+" request", 0)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("request_id", requestID).Str("method", method).Str("url", target).Err(err).Msg("request failed")
		return goerrors.WrapPrefix(err, method+" "+target, 0)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerrors.WrapPrefix(err, "read "+method+" response", 0)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("remote request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return goerrors.WrapPrefix(ErrEmptyResponse, "decode "+method+" response", 0)
	}
	if err := sonic.Unmarshal(respBody, out); err != nil {
		return goerrors.WrapPrefix(err, "decode "+method+" response", 0)
	}
	return nil
}
