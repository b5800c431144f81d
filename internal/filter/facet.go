package filter

import "fmt"

// Facet identifies one filter dimension. The numeric order of the constants is
// the order in which the driver applies them.
type Facet int

const (
	FacetCountry Facet = iota
	FacetAssemblyLevel
	FacetAnnotation
	FacetYear
	FacetAtypical
	FacetSuppressed
	FacetTechnology
	FacetCoverage
	FacetANIIdentity
	FacetANICoverage
	FacetContigN50
	FacetContigL50
	FacetTotalGenes
	FacetProteinCoding
	FacetNonCoding
	FacetPseudogenes
	FacetBioproject
	FacetBiosample
	FacetHost
	FacetSourceCategory
	FacetSource
	FacetSample

	facetCount
)

var facetNames = [facetCount]string{
	"country",
	"assembly_level",
	"annotation",
	"year",
	"atypical",
	"suppressed",
	"sequencing_technology",
	"coverage",
	"ani_identity",
	"ani_coverage",
	"contig_n50",
	"contig_l50",
	"total_genes",
	"protein_coding",
	"non_coding",
	"pseudogenes",
	"bioproject",
	"biosample",
	"host",
	"source_category",
	"source",
	"sample",
}

// Facets returns every facet in application order
func Facets() []Facet {
	out := make([]Facet, facetCount)
	for i := range out {
		out[i] = Facet(i)
	}
	return out
}

// String returns the facet name
func (f Facet) String() string {
	if f < 0 || f >= facetCount {
		return fmt.Sprintf("facet(%d)", int(f))
	}
	return facetNames[f]
}

// MarshalText encodes the facet by name
func (f Facet) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a facet name
func (f *Facet) UnmarshalText(text []byte) error {
	for i, name := range facetNames {
		if name == string(text) {
			*f = Facet(i)
			return nil
		}
	}
	return fmt.Errorf("unknown facet %q", string(text))
}

// Step is the row count left after a facet was applied
type Step struct {
	Facet Facet `json:"facet"`
	Rows  int   `json:"rows"`
}
