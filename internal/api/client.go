package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"velora-storefront/pkg/apperr"
	"velora-storefront/pkg/logger"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// TokenSource supplies the current bearer token, empty when anonymous.
// Implemented by the local store.
type TokenSource interface {
	Token() string
}

// Client is the remote resource client. It attaches the bearer header when a
// token is present and maps non-success responses into the apperr taxonomy.
// No retries: every failure is surfaced once to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, reqRate float64, burst int) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(reqRate), burst),
	}
}

// Envelope is the remote's `{success, message, data, total}` wrapper. Auth
// endpoints respond with bare `{token, user}` bodies and bypass it.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Total   Money           `json:"total,omitempty"`
}

func (e *Envelope) errMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do issues one HTTP call and returns the raw response body. Transport
// failures and non-2xx statuses come back as *apperr.AppError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Transport("request cancelled while rate limited", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Precondition(fmt.Sprintf("failed to encode request body: %v", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apperr.Precondition(fmt.Sprintf("failed to build request: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req)
}

// send runs a prepared request through the shared auth/error/logging path.
func (c *Client) send(req *http.Request) ([]byte, error) {
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.APICall(req.Method, req.URL.Path, 0, time.Since(start), err)
		return nil, apperr.Transport("request failed", err)
	}
	defer resp.Body.Close()

	logger.APICall(req.Method, req.URL.Path, resp.StatusCode, time.Since(start), nil)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Transport("failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Pull the remote's message out when the error body is decodable
		var env Envelope
		message := ""
		if json.Unmarshal(respBody, &env) == nil {
			message = env.errMessage()
		}
		return nil, apperr.FromStatus(resp.StatusCode, message)
	}

	return respBody, nil
}

// doJSON decodes the response body directly into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperr.New(apperr.CodeRemote, "failed to decode response", 0, err)
	}
	return nil
}

// doEnvelope decodes the standard wrapper and rejects success=false bodies.
func (c *Client) doEnvelope(ctx context.Context, method, path string, body interface{}) (*Envelope, error) {
	var env Envelope
	if err := c.doJSON(ctx, method, path, body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		message := env.errMessage()
		if message == "" {
			message = "remote reported failure"
		}
		return nil, apperr.BadRequest(message, nil)
	}
	return &env, nil
}

// doMultipart posts a prepared multipart body (admin uploads).
func (c *Client) doMultipart(ctx context.Context, path string, form *bytes.Buffer, contentType string) (*Envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Transport("request cancelled while rate limited", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, form)
	if err != nil {
		return nil, apperr.Precondition(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", contentType)

	respBody, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, apperr.New(apperr.CodeRemote, "failed to decode response", 0, err)
	}
	if !env.Success {
		return nil, apperr.BadRequest(env.errMessage(), nil)
	}
	return &env, nil
}
