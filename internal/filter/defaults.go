package filter

import (
	"math"

	"github.com/metaminer/metaminer/internal/model"
)

// Slider limits that do not depend on the data
const (
	FirstSubmissionYear = 1980
	LastSubmissionYear  = 2025
	ANIPercentMax       = 100.0
)

// Bounds holds the full slider extents for a base table
type Bounds struct {
	Years         Range `json:"years"`
	Coverage      Range `json:"coverage"`
	ANIIdentity   Range `json:"aniIdentity"`
	ANICoverage   Range `json:"aniCoverage"`
	ContigN50     Range `json:"contigN50"`
	ContigL50     Range `json:"contigL50"`
	TotalGenes    Range `json:"totalGenes"`
	ProteinCoding Range `json:"proteinCoding"`
	NonCoding     Range `json:"nonCoding"`
	Pseudogenes   Range `json:"pseudogenes"`
}

// ComputeBounds derives slider extents. Fixed sliders widen when the data
// falls outside them so that defaults never drop a non-null value.
func ComputeBounds(base *model.Table) Bounds {
	return Bounds{
		Years:         widen(base, model.FieldSubmissionYear, Range{Lo: FirstSubmissionYear, Hi: LastSubmissionYear}),
		Coverage:      Range{Lo: math.Min(0, minOf(base, model.FieldCoverageDepth)), Hi: CoverageCeiling},
		ANIIdentity:   widen(base, model.FieldANIIdentity, Range{Lo: 0, Hi: ANIPercentMax}),
		ANICoverage:   widen(base, model.FieldANICoverage, Range{Lo: 0, Hi: ANIPercentMax}),
		ContigN50:     widen(base, model.FieldContigN50, Range{}),
		ContigL50:     widen(base, model.FieldContigL50, Range{}),
		TotalGenes:    widen(base, model.FieldTotalGenes, Range{}),
		ProteinCoding: widen(base, model.FieldProteinCoding, Range{}),
		NonCoding:     widen(base, model.FieldNonCoding, Range{}),
		Pseudogenes:   widen(base, model.FieldPseudogenes, Range{}),
	}
}

func widen(base *model.Table, f model.Field, r Range) Range {
	lo, hi, ok := base.MinMax(f)
	if !ok {
		return r
	}
	return Range{Lo: math.Min(r.Lo, math.Floor(lo)), Hi: math.Max(r.Hi, math.Ceil(hi))}
}

func minOf(base *model.Table, f model.Field) float64 {
	lo, _, ok := base.MinMax(f)
	if !ok {
		return 0
	}
	return math.Floor(lo)
}

// DefaultControls returns the state a freshly opened dashboard starts with:
// every category selected, full ranges, nulls included.
func DefaultControls(base *model.Table) ControlState {
	b := ComputeBounds(base)
	numeric := func(r Range) NumericControl {
		return NumericControl{Range: r, IncludeNull: true}
	}
	return ControlState{
		Country:        CountryWorld,
		AssemblyLevels: withExtras(model.AssemblyLevels, base.SortedDistinct(model.FieldAssemblyLevel)),
		Annotations:    withExtras(model.AnnotationCategories, base.SortedDistinct(model.FieldAnnotation)),
		Years:          b.Years,
		Atypical:       AtypicalAll,
		Suppressed:     SuppressedAll,
		Technologies:   []string{TechnologyAll},
		Coverage:       CoverageControl{Range: b.Coverage, IncludeAbove: true, IncludeNull: true},
		ANIIdentity:    numeric(b.ANIIdentity),
		ANICoverage:    numeric(b.ANICoverage),
		ContigN50:      numeric(b.ContigN50),
		ContigL50:      numeric(b.ContigL50),
		TotalGenes:     numeric(b.TotalGenes),
		ProteinCoding:  numeric(b.ProteinCoding),
		NonCoding:      numeric(b.NonCoding),
		Pseudogenes:    numeric(b.Pseudogenes),
		Hierarchy: Hierarchy{
			Hosts: withExtras(model.KnownHosts, base.SortedDistinct(model.FieldHost)),
		},
	}
}

// Options lists the choices each control offers
type Options struct {
	Countries      []string `json:"countries"`
	AssemblyLevels []string `json:"assemblyLevels"`
	Annotations    []string `json:"annotations"`
	Technologies   []string `json:"technologies"`
	Hosts          []string `json:"hosts"`
	Bioprojects    []string `json:"bioprojects"`
	Biosamples     []string `json:"biosamples"`
	Categories     []string `json:"categories"`
	Sources        []string `json:"sources"`
	Samples        []string `json:"samples"`
}

// StaticOptions returns the options that depend only on the base table.
// Keyword and cascade options are filled in by the driver.
func StaticOptions(base *model.Table) Options {
	return Options{
		Countries:      append([]string{CountryWorld}, base.SortedDistinct(model.FieldCountry)...),
		AssemblyLevels: withExtras(model.AssemblyLevels, base.SortedDistinct(model.FieldAssemblyLevel)),
		Annotations:    withExtras(model.AnnotationCategories, base.SortedDistinct(model.FieldAnnotation)),
		Technologies:   append([]string{TechnologyAll}, base.SortedDistinct(model.FieldSequencingTech)...),
		Hosts:          withExtras(model.KnownHosts, base.SortedDistinct(model.FieldHost)),
	}
}

// withExtras returns known values followed by any other values seen in data
func withExtras(known, seen []string) []string {
	out := make([]string, 0, len(known)+len(seen))
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
		out = append(out, k)
	}
	for _, s := range seen {
		if !set[s] {
			set[s] = true
			out = append(out, s)
		}
	}
	return out
}
