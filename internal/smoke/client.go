package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/pie/pkg/logger"
)

// client issues JSON requests against one service.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// apiError is the body the service returns for failed requests.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do sends a request and returns the status code and the full body.
func (c *client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(ctx, "failed to close response body", logger.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// getJSON fetches path and decodes a 200 response into v.
func (c *client) getJSON(ctx context.Context, path string, v any) error {
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: GET %s returned %d", ErrUnexpectedStatus, path, status)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", path, err)
	}
	return nil
}

// expectError sends a request that must fail with status and code.
func (c *client) expectError(ctx context.Context, method, path string, body any, status int, code string) error {
	got, data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if got != status {
		return fmt.Errorf("%w: %s %s returned %d, want %d", ErrUnexpectedStatus, method, path, got, status)
	}
	var e apiError
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("%s %s: decode error body: %w", method, path, err)
	}
	if e.Code != code {
		return fmt.Errorf("%w: %s %s code %q, want %q", ErrViolation, method, path, e.Code, code)
	}
	return nil
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
