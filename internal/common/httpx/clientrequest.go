package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultFetchTimeout = 10 * time.Second

type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s - %s", e.StatusCode, e.Status, e.Message)
}

// Temporary reports whether retrying the request may succeed.
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// GetBytes fetches url and returns the response body. Non-2xx responses are
// returned as *HTTPError.
func GetBytes(ctx context.Context, url string, timeout time.Duration, overrideTransport ...http.RoundTripper) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}
	client := &http.Client{
		Timeout: timeout,
	}
	if len(overrideTransport) > 0 {
		client.Transport = overrideTransport[0]
	}
	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &HTTPError{
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Message:    string(body),
		}
	}
	return body, nil
}
