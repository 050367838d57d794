package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/assetdash/assetdash/internal/common/httpx"
)

var catalogHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodGet,
		Path:    "/metadata",
		Handler: getMetadata,
	},
	{
		Method:  http.MethodGet,
		Path:    "/assets",
		Handler: listAssets,
	},
	{
		Method:  http.MethodGet,
		Path:    "/assets/{assetId}",
		Handler: getAsset,
	},
	{
		Method:  http.MethodGet,
		Path:    "/statistics",
		Handler: getStatistics,
	},
	{
		Method:  http.MethodGet,
		Path:    "/colors",
		Handler: getColors,
	},
	{
		Method:  http.MethodGet,
		Path:    "/facets",
		Handler: getFacets,
	},
	{
		Method:  http.MethodGet,
		Path:    "/geojson",
		Handler: getGeoJSON,
	},
	{
		Method:  http.MethodGet,
		Path:    "/view",
		Handler: getView,
	},
}

func Router(r chi.Router, b *Backend) {
	r.Use(LoadBackendContext(b))
	for _, handler := range catalogHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
