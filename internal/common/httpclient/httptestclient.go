package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
)

// TestHTTPClient serves requests directly from a handler without a network
// round trip.
type TestHTTPClient struct {
	config  Configurator
	handler http.Handler
}

func NewTestClient(config Configurator, handler http.Handler) *TestHTTPClient {
	return &TestHTTPClient{
		config:  config,
		handler: handler,
	}
}

func (c *TestHTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	req, err := newRequest(ctx, c.config, opts)
	if err != nil {
		return nil, err
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return checkResponse(rr.Code, rr.Body.Bytes())
}

func (c *TestHTTPClient) GetResource(ctx context.Context, pathTemplate string, params any, queryParams url.Values) ([]byte, error) {
	return getResource(ctx, c, pathTemplate, params, queryParams)
}

func (c *TestHTTPClient) ListResources(ctx context.Context, path string, queryParams url.Values) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:      http.MethodGet,
		Path:        path,
		QueryParams: queryParams,
	})
}
