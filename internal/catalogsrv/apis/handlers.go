package apis

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/internal/catalogsrv/geoview"
	"github.com/assetdash/assetdash/internal/common/httpx"
	"github.com/assetdash/assetdash/pkg/api"
)

const (
	querySort = "sort"
	sortName  = "name"
)

func getMetadata(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	c := b.catalog
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &api.MetadataRsp{
			Metadata:    c.Metadata(),
			Source:      c.Source(),
			Fingerprint: c.Fingerprint(),
			LoadedAt:    c.LoadedAt(),
			Mismatches:  c.MetadataMismatches(),
		},
	}, nil
}

func listAssets(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	criteria, err := CriteriaFromQuery(q)
	if err != nil {
		return nil, err
	}
	assets := b.catalog.Filter(criteria, b.cache)
	switch q.Get(querySort) {
	case "":
	case sortName:
		assets = catalogview.SortByName(assets)
	default:
		return nil, httpx.ErrInvalidRequest("unsupported sort order: " + q.Get(querySort))
	}
	log.Ctx(r.Context()).Debug().Int("count", len(assets)).Msg("listed assets")
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &api.AssetListRsp{
			Criteria: criteria,
			Total:    b.catalog.Len(),
			Count:    len(assets),
			Assets:   assets,
		},
	}, nil
}

func getAsset(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	id, err := assetIDParam(r)
	if err != nil {
		return nil, err
	}
	a, ok := b.catalog.Asset(id)
	if !ok {
		return nil, ErrAssetNotFound.Suffix(id)
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   &a,
	}, nil
}

// assetIDParam returns the unescaped asset id. chi routes on the escaped
// path whenever the request carries a RawPath, e.g. for ids containing "/".
func assetIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "assetId")
	if r.URL.RawPath == "" {
		return id, nil
	}
	unescaped, err := url.PathUnescape(id)
	if err != nil {
		return "", httpx.ErrInvalidRequest("invalid asset id: " + id)
	}
	return unescaped, nil
}

func getStatistics(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	criteria, err := CriteriaFromQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &api.StatisticsRsp{
			Total:    b.catalog.Statistics(),
			Filtered: catalogview.ComputeStatistics(b.catalog.Filter(criteria, b.cache)),
		},
	}, nil
}

func getColors(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   b.catalog.Colors(),
	}, nil
}

func getFacets(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   b.catalog.Facets(),
	}, nil
}

func getGeoJSON(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	criteria, err := CriteriaFromQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}
	fc := geoview.FeatureCollection(b.catalog.Filter(criteria, b.cache), b.catalog.Colors())
	return &httpx.Response{
		StatusCode:  http.StatusOK,
		Response:    fc,
		ContentType: "application/geo+json",
	}, nil
}

func getView(r *http.Request) (*httpx.Response, error) {
	b, err := backend(r)
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	criteria, err := CriteriaFromQuery(q)
	if err != nil {
		return nil, err
	}
	view, err := BuildView(b.catalog, b.cache, criteria, q.Get(api.QuerySelected))
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   view,
	}, nil
}
