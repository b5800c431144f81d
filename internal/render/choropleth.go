package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/model"
)

// CountryUnitedStates has its state codes mapped directly, without geometry files
const CountryUnitedStates = "United States"

// RegionSource provides the regions of a country by ISO3 code
type RegionSource interface {
	Regions(countryCode string) ([]model.Region, error)
}

// Choropleth counts genomes per country for "World", or per region for a
// single country. Regions known from geometry but without genomes are listed
// with a zero count.
func Choropleth(view *model.Table, country string, geo RegionSource) *Figure {
	if country == "" || country == filter.CountryWorld {
		return worldMap(view)
	}
	return countryMap(view, country, geo)
}

func worldMap(view *model.Table) *Figure {
	fig := emptyFigure(ChartMap, KindMap, "Global Counts")

	type key struct{ code, name string }
	counts := make(map[key]int)
	mapped := 0
	for _, r := range view.Rows() {
		code := strings.TrimSpace(r.Value(model.FieldCountryCode))
		name := strings.TrimSpace(r.Value(model.FieldCountry))
		if code == "" || name == "" {
			continue
		}
		counts[key{code, name}]++
		mapped++
	}

	for k, n := range counts {
		fig.Regions = append(fig.Regions, RegionCount{Code: k.code, Name: k.name, Count: n, Scale: math.Log1p(float64(n))})
	}
	sortRegions(fig.Regions)
	fig.Notes = []string{
		fmt.Sprintf("Total isolates: %d", view.Len()),
		fmt.Sprintf("Isolates without geographical data: %d", view.Len()-mapped),
	}
	return fig
}

func countryMap(view *model.Table, country string, geo RegionSource) *Figure {
	fig := emptyFigure(ChartMap, KindMap, fmt.Sprintf("Counts for %s", country))

	inCountry := view.Filter(func(r *model.Record) bool {
		return r.Value(model.FieldCountry) == country
	})

	type key struct{ code, name string }
	counts := make(map[key]int)
	mapped := 0
	for _, r := range inCountry.Rows() {
		code := strings.TrimSpace(r.Value(model.FieldStateCode))
		name := strings.TrimSpace(r.Value(model.FieldStateName))
		if code == "" || name == "" {
			continue
		}
		if country == CountryUnitedStates {
			code = stripCountryPrefix(code)
		}
		counts[key{code, name}]++
		mapped++
	}

	seen := make(map[string]bool, len(counts))
	for k, n := range counts {
		seen[k.code] = true
		fig.Regions = append(fig.Regions, RegionCount{Code: k.code, Name: k.name, Count: n, Scale: float64(n)})
	}

	fig.Notes = []string{
		fmt.Sprintf("Total isolates from %s: %d", country, inCountry.Len()),
		fmt.Sprintf("Isolates without states' info.: %d", inCountry.Len()-mapped),
	}

	if country != CountryUnitedStates && inCountry.Len() > 0 {
		code := inCountry.Rows()[0].Value(model.FieldCountryCode)
		regions, err := lookupRegions(geo, code)
		if err != nil {
			fig.Notes = append(fig.Notes, fmt.Sprintf("Region boundaries unavailable: %v", err))
		}
		for _, region := range regions {
			if seen[region.Code] {
				continue
			}
			seen[region.Code] = true
			fig.Regions = append(fig.Regions, RegionCount{Code: region.Code, Name: region.Name})
		}
	}

	sortRegions(fig.Regions)
	return fig
}

func lookupRegions(geo RegionSource, countryCode string) ([]model.Region, error) {
	if geo == nil {
		return nil, fmt.Errorf("no geometry source configured")
	}
	return geo.Regions(countryCode)
}

// stripCountryPrefix turns "US-CA" into "CA"
func stripCountryPrefix(code string) string {
	if i := strings.Index(code, "-"); i >= 0 {
		return code[i+1:]
	}
	return code
}

func sortRegions(regions []RegionCount) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Name != regions[j].Name {
			return regions[i].Name < regions[j].Name
		}
		return regions[i].Code < regions[j].Code
	})
}
