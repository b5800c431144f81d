package filter

import (
	"github.com/go-logr/logr"

	"github.com/metaminer/metaminer/internal/model"
)

// Selections are the effective multi-select values after an update. Values
// that were no longer offered have been dropped.
type Selections struct {
	Bioprojects []string `json:"bioprojects"`
	Biosamples  []string `json:"biosamples"`
	Categories  []string `json:"categories"`
	Sources     []string `json:"sources"`
	Samples     []string `json:"samples"`
}

// Result is everything one update produces
type Result struct {
	View        *model.Table `json:"-"`
	Status      Status       `json:"status"`
	Options     Options      `json:"options"`
	Selections  Selections   `json:"selections"`
	GenomeCount int          `json:"genomeCount"`
	Steps       []Step       `json:"steps"`
}

// Driver composes every facet into one filtered view
type Driver struct {
	logger logr.Logger
}

// NewDriver creates a driver that logs per-facet row counts at V(1)
func NewDriver(logger logr.Logger) *Driver {
	return &Driver{logger: logger.WithName("filter")}
}

// Compose applies every facet in order to base and returns the filtered view
// with its status strings and the options of every dependent control. base
// is never modified; the previous view is never reused.
func (d *Driver) Compose(base *model.Table, state ControlState) *Result {
	res := &Result{
		Options: StaticOptions(base),
		Steps:   make([]Step, 0, int(facetCount)),
	}
	st := &res.Status

	view := base
	step := func(f Facet, next *model.Table) {
		view = next
		res.Steps = append(res.Steps, Step{Facet: f, Rows: view.Len()})
		d.logger.V(1).Info("facet applied", "facet", f.String(), "rows", view.Len())
	}

	step(FacetCountry, Country(view, state.Country))
	step(FacetAssemblyLevel, Membership(view, model.FieldAssemblyLevel, state.AssemblyLevels))
	step(FacetAnnotation, Membership(view, model.FieldAnnotation, state.Annotations))
	step(FacetYear, YearRange(view, state.Years))

	before := view.Len()
	step(FacetAtypical, Atypical(view, state.Atypical))
	st.Atypical = atypicalText(state.Atypical, before, view.Len())

	before = view.Len()
	step(FacetSuppressed, Suppressed(view, state.Suppressed))
	st.Suppressed = suppressedText(state.Suppressed, before, view.Len())

	step(FacetTechnology, Technologies(view, state.Technologies))

	next, _ := CoverageRange(view, state.Coverage)
	step(FacetCoverage, next)
	st.CoverageNull = coverageNullText(state.Coverage)

	next, excluded := NumericRange(view, model.FieldANIIdentity, state.ANIIdentity)
	step(FacetANIIdentity, next)
	st.ANIIdentityNull = nullText(state.ANIIdentity, excluded, "%d Genomes with no %% ANI identity data are excluded.")

	next, excluded = NumericRange(view, model.FieldANICoverage, state.ANICoverage)
	step(FacetANICoverage, next)
	st.ANICoverageNull = nullText(state.ANICoverage, excluded, "%d genomes with no %% coverage data are excluded.")

	next, excluded = NumericRange(view, model.FieldContigN50, state.ContigN50)
	step(FacetContigN50, next)
	st.ContigN50Null = nullText(state.ContigN50, excluded, "%d genomes with no Contig N50 data are excluded.")

	next, excluded = NumericRange(view, model.FieldContigL50, state.ContigL50)
	step(FacetContigL50, next)
	st.ContigL50Null = nullText(state.ContigL50, excluded, "%d genomes with no Contig L50 data are excluded.")

	next, excluded = NumericRange(view, model.FieldTotalGenes, state.TotalGenes)
	step(FacetTotalGenes, next)
	st.TotalGenesNull = nullText(state.TotalGenes, excluded, "%d genomes excluded that didn't have total gene count.")

	next, excluded = NumericRange(view, model.FieldProteinCoding, state.ProteinCoding)
	step(FacetProteinCoding, next)
	st.ProteinCodingNull = nullText(state.ProteinCoding, excluded, "%d genomes excluded that didn't have CDSs count.")

	next, excluded = NumericRange(view, model.FieldNonCoding, state.NonCoding)
	step(FacetNonCoding, next)
	st.NonCodingNull = nullText(state.NonCoding, excluded, "%d genomes excluded that didn't have non-coding gene count.")

	next, excluded = NumericRange(view, model.FieldPseudogenes, state.Pseudogenes)
	step(FacetPseudogenes, next)
	st.PseudogenesNull = nullText(state.Pseudogenes, excluded, "%d genomes excluded that didn't have pseudogene count")

	projects := Keyword(view, model.FieldBioproject, state.Bioproject)
	step(FacetBioproject, projects.View)
	d.logger.V(1).Info("bioproject selection resolved",
		"edit", state.Bioproject.Edit.String(), "matches", len(projects.Matches), "selected", len(projects.Selected))

	samples := Keyword(view, model.FieldBiosample, state.Biosample)
	step(FacetBiosample, samples.View)
	d.logger.V(1).Info("biosample selection resolved",
		"edit", state.Biosample.Edit.String(), "matches", len(samples.Matches), "selected", len(samples.Selected))

	cascade := Cascade(view, state.Hierarchy)
	view = cascade.View
	res.Steps = append(res.Steps, cascade.Steps...)
	d.logger.V(1).Info("hierarchy applied", "rows", view.Len(),
		"categories", len(cascade.Categories), "sources", len(cascade.Sources), "samples", len(cascade.Samples))

	res.View = view
	res.GenomeCount = view.Len()
	res.Options.Bioprojects = projects.Options
	res.Options.Biosamples = samples.Options
	res.Options.Categories = cascade.CategoryOptions
	res.Options.Sources = cascade.SourceOptions
	res.Options.Samples = cascade.SampleOptions
	res.Selections = Selections{
		Bioprojects: projects.Selected,
		Biosamples:  samples.Selected,
		Categories:  cascade.Categories,
		Sources:     cascade.Sources,
		Samples:     cascade.Samples,
	}

	st.Years = yearText(state.Years)
	st.Coverage = coverageText(view)
	st.ANI = aniText(state.ANIIdentity.Range, state.ANICoverage.Range)
	st.ContigStats = contigText(state.ContigN50.Range, state.ContigL50.Range)
	st.TotalGenes = geneRangeText("Total gene", state.TotalGenes.Range)
	st.ProteinCoding = geneRangeText("CDSs", state.ProteinCoding.Range)
	st.NonCoding = geneRangeText("Non-coding gene", state.NonCoding.Range)
	st.Pseudogenes = geneRangeText("Pseudogene", state.Pseudogenes.Range)
	st.Bioproject = bioprojectText(view)
	st.Biosample = biosampleText(view)
	st.Source = sourceText(view)
	st.GenomeCount = formatCount(res.GenomeCount)

	d.logger.Info("filters composed", "base", base.Len(), "genomes", res.GenomeCount)
	return res
}

func formatCount(n int) string {
	return formatNumber(float64(n))
}
