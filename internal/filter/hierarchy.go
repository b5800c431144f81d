package filter

import (
	"github.com/metaminer/metaminer/internal/model"
)

// CascadeResult is the outcome of the host/category/source/sample cascade
type CascadeResult struct {
	View            *model.Table
	CategoryOptions []string
	SourceOptions   []string
	SampleOptions   []string
	Categories      []string // effective selections after stale values were dropped
	Sources         []string
	Samples         []string
	Steps           []Step
}

// Cascade applies the isolation-source hierarchy. Hosts are always filtered.
// Each lower level filters only when it has a selection, and a level's
// options stay empty until the level above it has one.
func Cascade(t *model.Table, h Hierarchy) CascadeResult {
	res := CascadeResult{}

	view := Membership(t, model.FieldHost, h.Hosts)
	res.Steps = append(res.Steps, Step{Facet: FacetHost, Rows: view.Len()})

	res.CategoryOptions = view.Distinct(model.FieldSourceCategory)
	view, res.Categories = level(view, model.FieldSourceCategory, h.Categories, res.CategoryOptions)
	res.Steps = append(res.Steps, Step{Facet: FacetSourceCategory, Rows: view.Len()})

	if len(res.Categories) > 0 {
		res.SourceOptions = view.Distinct(model.FieldSource)
		view, res.Sources = level(view, model.FieldSource, h.Sources, res.SourceOptions)
	}
	res.Steps = append(res.Steps, Step{Facet: FacetSource, Rows: view.Len()})

	if len(res.Sources) > 0 {
		res.SampleOptions = view.Distinct(model.FieldSample)
		view, res.Samples = level(view, model.FieldSample, h.Samples, res.SampleOptions)
	}
	res.Steps = append(res.Steps, Step{Facet: FacetSample, Rows: view.Len()})

	res.View = view
	return res
}

// level filters one optional cascade level by the part of the selection that
// is still offered. Nothing offered means no filtering.
func level(t *model.Table, field model.Field, selected, options []string) (*model.Table, []string) {
	effective := intersect(selected, options)
	if len(effective) == 0 {
		return t, nil
	}
	return Membership(t, field, effective), effective
}

// intersect keeps the selected values that appear in options, deduplicated,
// in selection order
func intersect(selected, options []string) []string {
	offered := toSet(options)
	seen := make(map[string]bool, len(selected))
	var out []string
	for _, s := range selected {
		if offered[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
