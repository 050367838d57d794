// Package catalogstore loads and validates the asset catalog. A loaded
// Catalog never changes; reloading builds a new one.
package catalogstore

import (
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	"github.com/anand-gl/jsoncanonicalizer"
	json "github.com/json-iterator/go"
	"github.com/zeebo/blake3"

	"github.com/assetdash/assetdash/internal/catalogsrv/catalogview"
	"github.com/assetdash/assetdash/pkg/types"
)

// Catalog is a validated, read-only asset catalog together with the values
// derived from it once at load time. A Catalog is safe for concurrent use.
type Catalog struct {
	metadata    types.Metadata
	assets      []types.Asset
	byID        map[string]int
	source      string
	fingerprint string
	loadedAt    time.Time
	colors      types.MarkerColors
	stats       types.Statistics
	facets      types.FacetOptions
}

// NewCatalog validates db and builds a Catalog from it.
func NewCatalog(db types.AssetsDatabase) (*Catalog, error) {
	if db.Assets == nil {
		db.Assets = []types.Asset{}
	}
	doc, err := json.Marshal(db)
	if err != nil {
		return nil, ErrInvalidCatalog.Err(err)
	}
	return build(doc, "memory")
}

func build(doc []byte, source string) (*Catalog, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	var db types.AssetsDatabase
	if err := json.Unmarshal(doc, &db); err != nil {
		return nil, ErrInvalidCatalog.MsgErr("unable to decode catalog", err)
	}
	if err := validateDatabase(&db); err != nil {
		return nil, err
	}
	// Fingerprint the decoded database rather than doc so that unknown
	// fields and formatting do not change it.
	normalized, err := json.Marshal(db)
	if err != nil {
		return nil, ErrInvalidCatalog.MsgErr("unable to encode catalog", err)
	}
	fp, err := fingerprint(normalized)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		metadata:    db.Metadata,
		assets:      db.Assets,
		byID:        make(map[string]int, len(db.Assets)),
		source:      source,
		fingerprint: fp,
		loadedAt:    time.Now().UTC(),
		colors:      catalogview.AssignColors(db.Assets),
		stats:       catalogview.ComputeStatistics(db.Assets),
		facets:      catalogview.Facets(db.Assets),
	}
	if c.assets == nil {
		c.assets = []types.Asset{}
	}
	for i, a := range c.assets {
		c.byID[a.AssetID] = i
	}
	return c, nil
}

// fingerprint hashes the canonical form of doc so that the same catalog
// yields the same fingerprint whatever its source encoding.
func fingerprint(doc []byte) (string, error) {
	canonical, err := jsoncanonicalizer.Transform(doc)
	if err != nil {
		return "", ErrInvalidCatalog.MsgErr("unable to canonicalize catalog", err)
	}
	sum := blake3.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func (c *Catalog) Metadata() types.Metadata {
	return c.metadata
}

// Database returns a copy of the catalog document.
func (c *Catalog) Database() types.AssetsDatabase {
	return types.AssetsDatabase{
		Metadata: c.metadata,
		Assets:   c.Assets(),
	}
}

// Assets returns a copy of the assets in catalog order.
func (c *Catalog) Assets() []types.Asset {
	return slices.Clone(c.assets)
}

func (c *Catalog) Len() int {
	return len(c.assets)
}

func (c *Catalog) Asset(assetID string) (types.Asset, bool) {
	i, ok := c.byID[assetID]
	if !ok {
		return types.Asset{}, false
	}
	return c.assets[i], true
}

// Filter runs the filter engine over the catalog. cache may be nil.
func (c *Catalog) Filter(criteria types.FilterCriteria, cache *catalogview.Cache) []types.Asset {
	return cache.Filter(c.fingerprint, c.assets, criteria)
}

// Colors returns the category colors assigned at load time.
func (c *Catalog) Colors() types.MarkerColors {
	out := types.NewMarkerColors()
	for _, e := range c.colors.Entries() {
		out.Set(e.Category, e.Color)
	}
	return out
}

// Statistics returns the statistics of the whole catalog.
func (c *Catalog) Statistics() types.Statistics {
	return c.stats
}

func (c *Catalog) Facets() types.FacetOptions {
	return types.FacetOptions{
		Countries:          slices.Clone(c.facets.Countries),
		AssetTypes:         slices.Clone(c.facets.AssetTypes),
		PlanetCoverages:    slices.Clone(c.facets.PlanetCoverages),
		Sentinel1Coverages: slices.Clone(c.facets.Sentinel1Coverages),
		Sentinel2Coverages: slices.Clone(c.facets.Sentinel2Coverages),
	}
}

// Fingerprint is the hex BLAKE3 hash of the canonical JSON of the decoded
// database. Catalogs with the same content share it however they were
// built or encoded; fields the model does not know are ignored.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

func (c *Catalog) Source() string {
	return c.source
}

func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// MetadataMismatches lists the metadata counts that disagree with the
// assets. The catalog is still usable; the counts served are always the
// computed ones.
func (c *Catalog) MetadataMismatches() []string {
	var out []string
	check := func(name string, declared, actual int) {
		if declared != 0 && declared != actual {
			out = append(out, fmt.Sprintf("%s: declared %d, found %d", name, declared, actual))
		}
	}
	check("total_assets", c.metadata.TotalAssets, c.stats.TotalAssets)
	check("countries", c.metadata.Countries, c.stats.TotalCountries)
	check("asset_types", c.metadata.AssetTypes, c.stats.TotalAssetTypes)
	return out
}

// Encode writes the catalog in the encoding derived from name, e.g.
// "catalog.yaml.zst".
func (c *Catalog) Encode(name string) ([]byte, error) {
	enc, err := DetectEncoding(name)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(c.Database())
	if err != nil {
		return nil, ErrCatalogError.MsgErr("unable to encode catalog", err)
	}
	return enc.FromJSON(doc)
}
