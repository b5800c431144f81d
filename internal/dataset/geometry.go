package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/metaminer/metaminer/internal/model"
)

// GeometryFileSuffix is appended to the ISO3 country code to name region files
const GeometryFileSuffix = "_states.json"

type featureCollection struct {
	Features []struct {
		Properties struct {
			Code string `json:"ISO_1"`
			Name string `json:"NAME_1"`
		} `json:"properties"`
	} `json:"features"`
}

// Geometry loads and caches per-country region lists from a directory of
// GeoJSON feature collections.
type Geometry struct {
	dir   string
	mu    sync.Mutex
	cache map[string][]model.Region
}

// NewGeometry creates a loader rooted at dir
func NewGeometry(dir string) *Geometry {
	return &Geometry{
		dir:   dir,
		cache: make(map[string][]model.Region),
	}
}

// Path returns the file holding a country's regions
func (g *Geometry) Path(countryCode string) string {
	return filepath.Join(g.dir, strings.ToUpper(countryCode)+GeometryFileSuffix)
}

// Regions returns the regions of a country identified by its ISO3 code
func (g *Geometry) Regions(countryCode string) ([]model.Region, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return nil, fmt.Errorf("empty country code")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if regions, ok := g.cache[code]; ok {
		return regions, nil
	}

	f, err := os.Open(g.Path(code))
	if err != nil {
		return nil, fmt.Errorf("failed to open geometry for %s: %w", code, err)
	}
	defer f.Close()

	regions, err := ParseRegions(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geometry for %s: %w", code, err)
	}
	g.cache[code] = regions
	return regions, nil
}

// ParseRegions extracts region codes and names from a feature collection.
// Features without a code are skipped; duplicate codes keep the first name.
func ParseRegions(r io.Reader) ([]model.Region, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(fc.Features))
	regions := make([]model.Region, 0, len(fc.Features))
	for _, feature := range fc.Features {
		code := strings.TrimSpace(feature.Properties.Code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		regions = append(regions, model.Region{Code: code, Name: feature.Properties.Name})
	}
	return regions, nil
}
