package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticConfig string

func (s staticConfig) GetServerURL() string { return string(s) }

func testHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/assets/EQ%2F1":
			w.Write([]byte(`{"asset_id":"EQ/1"}`))
		case "/assets":
			w.Write([]byte(`{"query":"` + r.URL.RawQuery + `"}`))
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream down"))
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"result":0,"error":"asset not found"}`))
		}
	})
}

func TestClients(t *testing.T) {
	srv := httptest.NewServer(testHandler())
	defer srv.Close()

	clients := map[string]HTTPClientInterface{
		"remote": NewClient(staticConfig(srv.URL + "/")),
		"test":   NewTestClient(staticConfig("http://catalog.local"), testHandler()),
	}
	ctx := context.Background()
	for name, c := range clients {
		t.Run(name, func(t *testing.T) {
			body, err := c.GetResource(ctx, "/assets/{assetId}", map[string]string{"assetId": "EQ/1"}, nil)
			require.NoError(t, err)
			assert.JSONEq(t, `{"asset_id":"EQ/1"}`, string(body))

			body, err = c.ListResources(ctx, "assets", url.Values{"country": []string{"Norway"}})
			require.NoError(t, err)
			assert.JSONEq(t, `{"query":"country=Norway"}`, string(body))

			_, err = c.GetResource(ctx, "/assets/{assetId}", map[string]string{"assetId": "nope"}, nil)
			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
			assert.Equal(t, "asset not found", httpErr.Message)

			_, err = c.ListResources(ctx, "/broken", nil)
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
			assert.Equal(t, "upstream down", httpErr.Message)

			_, err = c.GetResource(ctx, "/assets/{assetId}", map[string]string{}, nil)
			assert.Error(t, err)
		})
	}
}
