package render

import (
	"sort"

	"github.com/metaminer/metaminer/internal/model"
)

// ANIScatter plots ANI identity against ANI coverage, one series per
// sequencing technology.
func ANIScatter(view *model.Table) *Figure {
	fig := pairScatter(view, model.FieldANIIdentity, model.FieldANICoverage)
	fig.ID = ChartANI
	fig.Title = "ANI best match"
	fig.XLabel = "% Identity"
	fig.YLabel = "% Coverage"
	return fig
}

// ContigScatter plots contig N50 against L50, one series per sequencing
// technology. N50 is drawn on a log axis.
func ContigScatter(view *model.Table) *Figure {
	fig := pairScatter(view, model.FieldContigN50, model.FieldContigL50)
	fig.ID = ChartContig
	fig.Title = "Contig N50 / L50"
	fig.XLabel = "Contig N50 (log scale)"
	fig.YLabel = "Contig L50"
	fig.LogX = true
	return fig
}

// unknownTechnology labels genomes without a sequencing technology
const unknownTechnology = "Unknown"

func pairScatter(view *model.Table, xField, yField model.Field) *Figure {
	fig := &Figure{Kind: KindScatter}

	byTech := make(map[string][]Point)
	for _, r := range view.Rows() {
		x, y := r.Number(xField), r.Number(yField)
		if !x.Valid || !y.Valid {
			continue
		}
		tech := r.Value(model.FieldSequencingTech)
		if tech == "" {
			tech = unknownTechnology
		}
		byTech[tech] = append(byTech[tech], Point{X: x.Value, Y: y.Value})
	}

	techs := make([]string, 0, len(byTech))
	for tech := range byTech {
		techs = append(techs, tech)
	}
	sort.Strings(techs)
	for _, tech := range techs {
		fig.Series = append(fig.Series, Series{Name: tech, Points: byTech[tech]})
	}
	return fig
}
