package httpclient

import (
	"context"
	"net/url"
)

// Configurator supplies the server the client talks to.
type Configurator interface {
	GetServerURL() string
}

// RequestOptions contains options for making HTTP requests
type RequestOptions struct {
	Method      string
	Path        string
	QueryParams url.Values
	Body        []byte
}

// HTTPClientInterface defines the interface for HTTP client implementations
type HTTPClientInterface interface {
	// DoRequest makes an HTTP request with the given options
	DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error)

	// GetResource retrieves the resource at pathTemplate with its {name}
	// placeholders filled from params
	GetResource(ctx context.Context, pathTemplate string, params any, queryParams url.Values) ([]byte, error)

	// ListResources lists the resources at path
	ListResources(ctx context.Context, path string, queryParams url.Values) ([]byte, error)
}

// Verify that the HTTPClient and TestHTTPClient implement the HTTPClientInterface
var _ HTTPClientInterface = &HTTPClient{}
var _ HTTPClientInterface = &TestHTTPClient{}
