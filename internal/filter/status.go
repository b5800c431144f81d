package filter

import (
	"fmt"
	"strconv"

	"github.com/metaminer/metaminer/internal/model"
)

// Status holds the human-readable summary lines shown next to each control.
// Empty strings mean nothing to report.
type Status struct {
	Years             string `json:"years"`
	Atypical          string `json:"atypical"`
	Suppressed        string `json:"suppressed"`
	Coverage          string `json:"coverage"`
	CoverageNull      string `json:"coverageNull"`
	ANIIdentityNull   string `json:"aniIdentityNull"`
	ANICoverageNull   string `json:"aniCoverageNull"`
	ANI               string `json:"ani"`
	ContigStats       string `json:"contigStats"`
	ContigN50Null     string `json:"contigN50Null"`
	ContigL50Null     string `json:"contigL50Null"`
	TotalGenes        string `json:"totalGenes"`
	TotalGenesNull    string `json:"totalGenesNull"`
	ProteinCoding     string `json:"proteinCoding"`
	ProteinCodingNull string `json:"proteinCodingNull"`
	NonCoding         string `json:"nonCoding"`
	NonCodingNull     string `json:"nonCodingNull"`
	Pseudogenes       string `json:"pseudogenes"`
	PseudogenesNull   string `json:"pseudogenesNull"`
	Bioproject        string `json:"bioproject"`
	Biosample         string `json:"biosample"`
	Source            string `json:"source"`
	GenomeCount       string `json:"genomeCount"`
}

// Lines returns the non-empty status strings in display order
func (s Status) Lines() []string {
	all := []string{
		s.GenomeCount, s.Years, s.Atypical, s.Suppressed,
		s.Coverage, s.CoverageNull,
		s.ANI, s.ANIIdentityNull, s.ANICoverageNull,
		s.ContigStats, s.ContigN50Null, s.ContigL50Null,
		s.TotalGenes, s.TotalGenesNull,
		s.ProteinCoding, s.ProteinCodingNull,
		s.NonCoding, s.NonCodingNull,
		s.Pseudogenes, s.PseudogenesNull,
		s.Bioproject, s.Biosample, s.Source,
	}
	out := make([]string, 0, len(all))
	for _, line := range all {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// formatNumber prints integers without a fractional part
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yearText(r Range) string {
	return fmt.Sprintf("Assembly Submission Year Range: %s - %s", formatNumber(r.Lo), formatNumber(r.Hi))
}

func atypicalText(mode AtypicalMode, before, after int) string {
	switch mode {
	case AtypicalExclude:
		return fmt.Sprintf("Number of atypical assemblies excluded: %d", before-after)
	case AtypicalOnly:
		return fmt.Sprintf("Number of atypical assemblies: %d", after)
	default:
		return ""
	}
}

func suppressedText(mode SuppressedMode, before, after int) string {
	switch mode {
	case SuppressedExclude:
		return fmt.Sprintf("Number of suppressed assemblies excluded: %d", before-after)
	case SuppressedOnly:
		return fmt.Sprintf("Number of suppressed assemblies: %d", after)
	default:
		return ""
	}
}

func coverageText(view *model.Table) string {
	lo, hi, ok := view.MinMax(model.FieldCoverageDepth)
	if !ok {
		return "Coverage Depth range: no coverage data"
	}
	return fmt.Sprintf("Coverage Depth range: %sX to %sX", formatNumber(lo), formatNumber(hi))
}

func coverageNullText(ctl CoverageControl) string {
	if ctl.IncludeNull {
		return ""
	}
	return "Genomes with no coverage data are excluded."
}

func aniText(identity, coverage Range) string {
	return fmt.Sprintf("Selected %% Identity: %s  to %s, Selected %% Coverage: %s to %s",
		formatNumber(identity.Lo), formatNumber(identity.Hi),
		formatNumber(coverage.Lo), formatNumber(coverage.Hi))
}

func contigText(n50, l50 Range) string {
	return fmt.Sprintf("Contig N50: %s - %s, Contig L50: %s - %s",
		formatNumber(n50.Lo), formatNumber(n50.Hi),
		formatNumber(l50.Lo), formatNumber(l50.Hi))
}

// nullText reports excluded nulls only when the toggle is off
func nullText(ctl NumericControl, excluded int, format string) string {
	if ctl.IncludeNull {
		return ""
	}
	return fmt.Sprintf(format, excluded)
}

func geneRangeText(label string, r Range) string {
	return fmt.Sprintf("Selected '%s' range: %s to %s", label, formatNumber(r.Lo), formatNumber(r.Hi))
}

func bioprojectText(view *model.Table) string {
	return fmt.Sprintf("%d BioProjects are selected. They contain a total of %d assemblies.",
		len(view.Distinct(model.FieldBioproject)), view.Len())
}

func biosampleText(view *model.Table) string {
	return fmt.Sprintf("Selected BioSamples contain a total of %d assemblies.", view.Len())
}

func sourceText(view *model.Table) string {
	return fmt.Sprintf("Isolation source is Unknown for %d genomes among all selected genomes.",
		view.Count(model.FieldHost, model.HostUnknown))
}
