package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/metaminer/metaminer/internal/model"
)

// MaxHistogramBins caps the automatic bin count
const MaxHistogramBins = 30

// GeneHistogram bins a gene-count column into equal-width bins. label names
// the count in the notes, e.g. "total gene".
func GeneHistogram(id ChartID, view *model.Table, field model.Field, title, label string) *Figure {
	fig := emptyFigure(id, KindHistogram, title)
	fig.XLabel = title
	fig.YLabel = "Count"

	values := view.Numbers(field)
	fig.Notes = []string{
		fmt.Sprintf("Total isolates: %d", view.Len()),
		fmt.Sprintf("Isolates without '%s' data: %d", label, view.Len()-len(values)),
	}
	if len(values) == 0 {
		return fig
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	bins := BinCount(len(values))
	if hi == lo {
		bins = 1
	}
	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		i := bins - 1
		if width > 0 {
			i = int((v - lo) / width)
			if i >= bins {
				i = bins - 1
			}
		}
		counts[i]++
	}

	for i, c := range counts {
		start := lo + float64(i)*width
		fig.Bars = append(fig.Bars, Bar{
			Label: formatNumber(math.Round(start)),
			Value: float64(c),
		})
	}
	return fig
}

// BinCount applies Sturges' rule, capped at MaxHistogramBins
func BinCount(n int) int {
	if n <= 1 {
		return 1
	}
	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	if bins > MaxHistogramBins {
		return MaxHistogramBins
	}
	return bins
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
