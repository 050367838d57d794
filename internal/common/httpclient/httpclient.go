package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/json-iterator/go"

	"github.com/assetdash/assetdash/internal/common/httpx"
)

const DefaultTimeout = 30 * time.Second

// ServerError represents an error response from the server
type ServerError struct {
	Result int    `json:"result"`
	Error  string `json:"error"`
}

// HTTPError represents an error response from the server with a status code
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// HTTPClient makes requests to a remote catalog server
type HTTPClient struct {
	config     Configurator
	httpClient *http.Client
}

func NewClient(config Configurator) *HTTPClient {
	return &HTTPClient{
		config:     config,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	req, err := newRequest(ctx, c.config, opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}
	return checkResponse(resp.StatusCode, body)
}

func (c *HTTPClient) GetResource(ctx context.Context, pathTemplate string, params any, queryParams url.Values) ([]byte, error) {
	return getResource(ctx, c, pathTemplate, params, queryParams)
}

func (c *HTTPClient) ListResources(ctx context.Context, path string, queryParams url.Values) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:      http.MethodGet,
		Path:        path,
		QueryParams: queryParams,
	})
}

func getResource(ctx context.Context, c HTTPClientInterface, pathTemplate string, params any, queryParams url.Values) ([]byte, error) {
	path, err := httpx.ResolvePath(pathTemplate, params)
	if err != nil {
		return nil, err
	}
	return c.DoRequest(ctx, RequestOptions{
		Method:      http.MethodGet,
		Path:        path,
		QueryParams: queryParams,
	})
}

// newRequest joins opts.Path to the server URL. The path is expected to be
// escaped already.
func newRequest(ctx context.Context, config Configurator, opts RequestOptions) (*http.Request, error) {
	base := strings.TrimRight(config.GetServerURL(), "/")
	u, err := url.Parse(base + "/" + strings.TrimLeft(opts.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %v", err)
	}
	if len(opts.QueryParams) > 0 {
		u.RawQuery = opts.QueryParams.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), bytes.NewReader(opts.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if len(opts.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func checkResponse(statusCode int, body []byte) ([]byte, error) {
	if statusCode < 400 {
		return body, nil
	}
	var serverErr ServerError
	if err := json.Unmarshal(body, &serverErr); err == nil && serverErr.Error != "" {
		return nil, &HTTPError{
			StatusCode: statusCode,
			Message:    serverErr.Error,
		}
	}
	return nil, &HTTPError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}
