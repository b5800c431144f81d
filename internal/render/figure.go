package render

// ChartID names one dashboard chart
type ChartID string

const (
	ChartMap            ChartID = "map"
	ChartAssemblyLevel  ChartID = "assembly_level"
	ChartAnnotation     ChartID = "annotation"
	ChartSubmissionYear ChartID = "submission_year"
	ChartTechnology     ChartID = "sequencing_technology"
	ChartCoverage       ChartID = "coverage"
	ChartANI            ChartID = "ani"
	ChartContig         ChartID = "contig_n50_l50"
	ChartTotalGenes     ChartID = "total_genes"
	ChartProteinCoding  ChartID = "protein_coding"
	ChartNonCoding      ChartID = "non_coding"
	ChartPseudogenes    ChartID = "pseudogenes"
	ChartTreemap        ChartID = "isolation_source"
)

// ChartIDs returns every chart in dashboard order
func ChartIDs() []ChartID {
	return []ChartID{
		ChartMap,
		ChartAssemblyLevel,
		ChartAnnotation,
		ChartSubmissionYear,
		ChartTechnology,
		ChartCoverage,
		ChartANI,
		ChartContig,
		ChartTotalGenes,
		ChartProteinCoding,
		ChartNonCoding,
		ChartPseudogenes,
		ChartTreemap,
	}
}

// Kind is the visual form of a figure
type Kind string

const (
	KindMap       Kind = "map"
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindTreemap   Kind = "treemap"
)

// Bar is one category of a bar chart or histogram
type Bar struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Highlight bool    `json:"highlight,omitempty"`
}

// Point is one marker of a line or scatter series
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size,omitempty"`
}

// Series is a named group of points
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// RegionCount is the number of genomes mapped to a country or region
type RegionCount struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Scale float64 `json:"scale"` // value used for the color scale
}

// Node is a treemap rectangle
type Node struct {
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	Children []*Node `json:"children,omitempty"`
}

// Figure is the data behind one chart
type Figure struct {
	ID      ChartID       `json:"id"`
	Kind    Kind          `json:"kind"`
	Title   string        `json:"title"`
	XLabel  string        `json:"xLabel,omitempty"`
	YLabel  string        `json:"yLabel,omitempty"`
	LogX    bool          `json:"logX,omitempty"`
	Notes   []string      `json:"notes,omitempty"`
	Bars    []Bar         `json:"bars,omitempty"`
	Series  []Series      `json:"series,omitempty"`
	Regions []RegionCount `json:"regions,omitempty"`
	Tree    *Node         `json:"tree,omitempty"`
}

// IsEmpty reports whether the figure has nothing to draw
func (f *Figure) IsEmpty() bool {
	if f == nil {
		return true
	}
	for _, b := range f.Bars {
		if b.Value != 0 {
			return false
		}
	}
	for _, s := range f.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	for _, r := range f.Regions {
		if r.Count > 0 {
			return false
		}
	}
	return f.Tree == nil || f.Tree.Count == 0
}

// Figures maps each chart to its figure
type Figures map[ChartID]*Figure

func emptyFigure(id ChartID, kind Kind, title string) *Figure {
	return &Figure{ID: id, Kind: kind, Title: title}
}
