package catalogview

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/assetdash/assetdash/pkg/types"
)

func newAsset(id, name, country, assetType, status string) types.Asset {
	return types.Asset{
		AssetID: id,
		BasicInfo: types.BasicInfo{
			Name: name,
			Type: assetType,
		},
		Location: types.Location{
			Country: country,
		},
		OperationalData: types.OperationalData{
			CurrentStatus: status,
		},
		PlanetDataCoverage: "High",
		Sentinel1Coverage:  "High",
		Sentinel2Coverage:  "High",
	}
}

func scenarioCatalog() []types.Asset {
	return []types.Asset{
		newAsset("a1", "Alpha Platform", "Norway", "Platform", "Operational"),
		newAsset("a2", "Beta Terminal", "Norway", "Terminal", "Under Construction"),
		newAsset("a3", "Gamma Field", "UK", "Platform", "operational"),
	}
}

var (
	fakeCountries = []string{"Norway", "UK", "Brazil", "USA", "Denmark"}
	fakeTypes     = []string{"Platform", "Terminal", "Wind Farm", "Refinery", "Field", "Pipeline"}
	fakeCoverage  = []string{"High", "Medium", "Low", "None"}
	fakeStatus    = []string{"Operational", "operational", "Under Development", "Decommissioned"}
)

// randomCatalog builds a reproducible catalog of n assets.
func randomCatalog(seed uint64, n int) []types.Asset {
	f := gofakeit.New(seed)
	assets := make([]types.Asset, 0, n)
	for i := 0; i < n; i++ {
		a := types.Asset{
			AssetID: fmt.Sprintf("asset-%03d", i),
			BasicInfo: types.BasicInfo{
				Name: f.Company() + " " + f.RandomString(fakeTypes),
				Type: f.RandomString(fakeTypes),
			},
			Location: types.Location{
				Country: f.RandomString(fakeCountries),
				Region:  f.State(),
				Coordinates: types.Coordinates{
					Latitude:  f.Latitude(),
					Longitude: f.Longitude(),
				},
			},
			OperationalData: types.OperationalData{
				CurrentStatus: f.RandomString(fakeStatus),
			},
			PlanetDataCoverage: f.RandomString(fakeCoverage),
			Sentinel1Coverage:  f.RandomString(fakeCoverage),
			Sentinel2Coverage:  f.RandomString(fakeCoverage),
		}
		if f.Bool() {
			a.Location.NearbyCities = f.City() + ", " + f.City()
		}
		assets = append(assets, a)
	}
	return assets
}

func ids(assets []types.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.AssetID)
	}
	return out
}
