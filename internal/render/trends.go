package render

import (
	"math"
	"sort"
	"strconv"

	"github.com/metaminer/metaminer/internal/model"
)

// SubmissionYearLine counts submissions per year
func SubmissionYearLine(view *model.Table) *Figure {
	fig := emptyFigure(ChartSubmissionYear, KindLine, "Submissions over the years")
	fig.XLabel = "Year"
	fig.YLabel = "Number of submissions"

	counts := make(map[float64]int)
	for _, v := range view.Numbers(model.FieldSubmissionYear) {
		counts[v]++
	}
	if len(counts) == 0 {
		return fig
	}

	years := make([]float64, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Float64s(years)

	series := Series{Name: "Submissions", Points: make([]Point, 0, len(years))}
	for _, y := range years {
		series.Points = append(series.Points, Point{X: y, Y: float64(counts[y])})
	}
	fig.Series = []Series{series}
	return fig
}

// TechnologyScatter places one marker per (year, technology) pair, sized by
// the log10 of its genome count. Each technology is its own series.
func TechnologyScatter(view *model.Table, selected []string) *Figure {
	fig := emptyFigure(ChartTechnology, KindScatter, "Sequencing technologies over the years")
	fig.XLabel = "Submission Year"

	counts := make(map[string]map[float64]int)
	for _, r := range view.Rows() {
		year := r.Number(model.FieldSubmissionYear)
		tech := r.Value(model.FieldSequencingTech)
		if !year.Valid || tech == "" {
			continue
		}
		if counts[tech] == nil {
			counts[tech] = make(map[float64]int)
		}
		counts[tech][year.Value]++
	}

	techs := make([]string, 0, len(counts))
	for tech := range counts {
		techs = append(techs, tech)
	}
	sort.Strings(techs)

	for i, tech := range techs {
		years := make([]float64, 0, len(counts[tech]))
		for y := range counts[tech] {
			years = append(years, y)
		}
		sort.Float64s(years)

		series := Series{Name: tech}
		for _, y := range years {
			n := counts[tech][y]
			series.Points = append(series.Points, Point{X: y, Y: float64(i + 1), Size: math.Log10(float64(n))})
		}
		fig.Series = append(fig.Series, series)
	}
	if len(selected) > 0 {
		fig.Notes = []string{"Selected: " + joinLimited(selected, 5)}
	}
	return fig
}

func joinLimited(values []string, limit int) string {
	out := ""
	for i, v := range values {
		if i == limit {
			return out + ", +" + strconv.Itoa(len(values)-limit) + " more"
		}
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}
