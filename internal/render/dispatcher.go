package render

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/metaminer/metaminer/internal/filter"
	"github.com/metaminer/metaminer/internal/model"
)

// ErrUnknownChart is returned for a chart ID the dispatcher does not build
var ErrUnknownChart = errors.New("unknown chart")

type builder func(view *model.Table, state filter.ControlState) *Figure

// Dispatcher runs every chart builder against a filtered view
type Dispatcher struct {
	geo      RegionSource
	logger   logr.Logger
	builders map[ChartID]builder
}

// NewDispatcher creates a dispatcher. geo may be nil, in which case maps of
// single countries are drawn without zero-filled regions.
func NewDispatcher(geo RegionSource, logger logr.Logger) *Dispatcher {
	d := &Dispatcher{
		geo:    geo,
		logger: logger.WithName("render"),
	}
	d.builders = map[ChartID]builder{
		ChartMap: func(v *model.Table, s filter.ControlState) *Figure {
			return Choropleth(v, s.Country, d.geo)
		},
		ChartAssemblyLevel: func(v *model.Table, s filter.ControlState) *Figure {
			return AssemblyLevelBar(v, s.AssemblyLevels)
		},
		ChartAnnotation: func(v *model.Table, s filter.ControlState) *Figure {
			return AnnotationBar(v, s.Annotations)
		},
		ChartSubmissionYear: func(v *model.Table, _ filter.ControlState) *Figure {
			return SubmissionYearLine(v)
		},
		ChartTechnology: func(v *model.Table, s filter.ControlState) *Figure {
			return TechnologyScatter(v, s.Technologies)
		},
		ChartCoverage: func(v *model.Table, _ filter.ControlState) *Figure {
			return CoverageBar(v)
		},
		ChartANI: func(v *model.Table, _ filter.ControlState) *Figure {
			return ANIScatter(v)
		},
		ChartContig: func(v *model.Table, _ filter.ControlState) *Figure {
			return ContigScatter(v)
		},
		ChartTotalGenes: func(v *model.Table, _ filter.ControlState) *Figure {
			return GeneHistogram(ChartTotalGenes, v, model.FieldTotalGenes, "Total Genes", "total gene")
		},
		ChartProteinCoding: func(v *model.Table, _ filter.ControlState) *Figure {
			return GeneHistogram(ChartProteinCoding, v, model.FieldProteinCoding, "Protein Coding genes", "CDSs")
		},
		ChartNonCoding: func(v *model.Table, _ filter.ControlState) *Figure {
			return GeneHistogram(ChartNonCoding, v, model.FieldNonCoding, "Non-coding genes", "Non-coding gene")
		},
		ChartPseudogenes: func(v *model.Table, _ filter.ControlState) *Figure {
			return GeneHistogram(ChartPseudogenes, v, model.FieldPseudogenes, "Pseudogenes", "Pseudogene")
		},
		ChartTreemap: func(v *model.Table, _ filter.ControlState) *Figure {
			return Treemap(v)
		},
	}
	return d
}

// Render builds every chart. A builder that panics yields an empty figure and
// a logged error; the other charts are unaffected.
func (d *Dispatcher) Render(view *model.Table, state filter.ControlState) Figures {
	figures := make(Figures, len(d.builders))
	for _, id := range ChartIDs() {
		figures[id] = d.build(id, d.builders[id], view, state)
	}
	return figures
}

// RenderOne builds a single chart
func (d *Dispatcher) RenderOne(id ChartID, view *model.Table, state filter.ControlState) (*Figure, error) {
	b, ok := d.builders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, id)
	}
	return d.build(id, b, view, state), nil
}

func (d *Dispatcher) build(id ChartID, b builder, view *model.Table, state filter.ControlState) (fig *Figure) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(fmt.Errorf("%v", r), "chart builder panicked", "chart", string(id))
			fig = emptyFigure(id, KindBar, string(id))
		}
	}()
	fig = b(view, state)
	fig.ID = id
	return fig
}
