package render

import (
	"fmt"
	"math"

	"github.com/metaminer/metaminer/internal/model"
)

// assemblyBarOrder runs from least to most complete
var assemblyBarOrder = []string{
	model.AssemblyContig,
	model.AssemblyScaffold,
	model.AssemblyChromosome,
	model.AssemblyComplete,
}

// CoverageBinEdges are the left-closed, right-open coverage depth bins
var CoverageBinEdges = []float64{0, 50, 100, 200, 300, 400, 500, 700, 900, 1100, 1500, 3000, 5000, math.Inf(1)}

// AssemblyLevelBar counts genomes per assembly level in fixed order,
// highlighting the selected levels.
func AssemblyLevelBar(view *model.Table, selected []string) *Figure {
	fig := categoryBar(view, model.FieldAssemblyLevel, assemblyBarOrder, selected)
	fig.ID = ChartAssemblyLevel
	fig.Title = "Assembly Level"
	fig.YLabel = "Number of Assemblies"
	return fig
}

// AnnotationBar counts genomes per annotation source in fixed order,
// highlighting the selected categories.
func AnnotationBar(view *model.Table, selected []string) *Figure {
	fig := categoryBar(view, model.FieldAnnotation, model.AnnotationCategories, selected)
	fig.ID = ChartAnnotation
	fig.Title = "Annotation"
	fig.YLabel = "Number of Genomes"
	return fig
}

func categoryBar(view *model.Table, field model.Field, order, selected []string) *Figure {
	counts := view.Counts(field)
	highlight := make(map[string]bool, len(selected))
	for _, s := range selected {
		highlight[s] = true
	}

	fig := &Figure{Kind: KindBar, Bars: make([]Bar, 0, len(order))}
	for _, category := range order {
		fig.Bars = append(fig.Bars, Bar{
			Label:     category,
			Value:     float64(counts[category]),
			Highlight: highlight[category],
		})
	}
	return fig
}

// CoverageBar bins coverage depth into CoverageBinEdges. Genomes without
// coverage are reported in the notes.
func CoverageBar(view *model.Table) *Figure {
	fig := emptyFigure(ChartCoverage, KindBar, "Coverage Depth")
	fig.XLabel = "Coverage Depth (X)"
	fig.YLabel = "Number of Genomes"

	counts := make([]int, len(CoverageBinEdges)-1)
	missing := 0
	for _, r := range view.Rows() {
		n := r.Number(model.FieldCoverageDepth)
		if !n.Valid {
			missing++
			continue
		}
		bin := binIndex(CoverageBinEdges, n.Value)
		if bin < 0 {
			missing++
			continue
		}
		counts[bin]++
	}

	for i, c := range counts {
		fig.Bars = append(fig.Bars, Bar{Label: binLabel(CoverageBinEdges[i], CoverageBinEdges[i+1]), Value: float64(c)})
	}
	fig.Notes = []string{
		fmt.Sprintf("Total isolates: %d", view.Len()),
		fmt.Sprintf("Isolates without coverage data: %d", missing),
	}
	return fig
}

// binIndex finds the [edge_i, edge_i+1) bin holding v, or -1
func binIndex(edges []float64, v float64) int {
	for i := 0; i+1 < len(edges); i++ {
		if v >= edges[i] && v < edges[i+1] {
			return i
		}
	}
	return -1
}

func binLabel(lo, hi float64) string {
	if math.IsInf(hi, 1) {
		return fmt.Sprintf("[%s, inf)", formatNumber(lo))
	}
	return fmt.Sprintf("[%s, %s)", formatNumber(lo), formatNumber(hi))
}
