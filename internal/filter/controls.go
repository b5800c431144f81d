package filter

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidRange is returned for a range with lo > hi or a NaN bound
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidMode is returned for an unknown radio choice
	ErrInvalidMode = errors.New("invalid mode")
)

// Sentinel option values
const (
	// CountryWorld disables the country filter
	CountryWorld = "World"

	// TechnologyAll disables the sequencing technology filter
	TechnologyAll = "All"

	// CoverageCeiling is the top of the coverage slider; deeper genomes are
	// governed by the IncludeAbove toggle
	CoverageCeiling = 5000.0
)

// Range is an inclusive numeric interval
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Contains reports whether lo <= v <= hi
func (r Range) Contains(v float64) bool {
	return v >= r.Lo && v <= r.Hi
}

// Validate checks the lo <= hi invariant
func (r Range) Validate() error {
	if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) || r.Lo > r.Hi {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, r.Lo, r.Hi)
	}
	return nil
}

// NumericControl is a range slider with a null-inclusion toggle
type NumericControl struct {
	Range       Range `json:"range"`
	IncludeNull bool  `json:"includeNull"`
}

// CoverageControl is the coverage slider with its two toggles
type CoverageControl struct {
	Range        Range `json:"range"`
	IncludeAbove bool  `json:"includeAbove"`
	IncludeNull  bool  `json:"includeNull"`
}

// AtypicalMode selects how atypical assemblies are treated
type AtypicalMode string

const (
	AtypicalAll     AtypicalMode = "all"
	AtypicalExclude AtypicalMode = "no_atypical"
	AtypicalOnly    AtypicalMode = "only_atypical"
)

// IsValid reports whether the mode is known
func (m AtypicalMode) IsValid() bool {
	return m == AtypicalAll || m == AtypicalExclude || m == AtypicalOnly
}

// SuppressedMode selects how suppressed assemblies are treated
type SuppressedMode string

const (
	SuppressedAll     SuppressedMode = "all"
	SuppressedExclude SuppressedMode = "no_suppressed"
	SuppressedOnly    SuppressedMode = "only_suppressed"
)

// IsValid reports whether the mode is known
func (m SuppressedMode) IsValid() bool {
	return m == SuppressedAll || m == SuppressedExclude || m == SuppressedOnly
}

// Edit tags which part of a keyword control changed in this update
type Edit int

const (
	// EditExternal means another control triggered the update
	EditExternal Edit = iota
	// EditText means the user typed in the keyword box
	EditText
	// EditDropdown means the user changed the multi-select directly
	EditDropdown
)

var editNames = []string{"external", "text", "dropdown"}

// String returns the edit name
func (e Edit) String() string {
	if e < 0 || int(e) >= len(editNames) {
		return fmt.Sprintf("edit(%d)", int(e))
	}
	return editNames[e]
}

// MarshalText encodes the edit by name
func (e Edit) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes an edit name; empty means external
func (e *Edit) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*e = EditExternal
		return nil
	}
	for i, name := range editNames {
		if name == s {
			*e = Edit(i)
			return nil
		}
	}
	return fmt.Errorf("%w: edit %q", ErrInvalidMode, s)
}

// KeywordControl is a free-text box feeding a multi-select
type KeywordControl struct {
	Text     string   `json:"text"`
	Selected []string `json:"selected"`
	Edit     Edit     `json:"edit"`
}

// Hierarchy holds the cascading isolation-source selections
type Hierarchy struct {
	Hosts      []string `json:"hosts"`
	Categories []string `json:"categories"`
	Sources    []string `json:"sources"`
	Samples    []string `json:"samples"`
}

// ControlState is a snapshot of every dashboard control
type ControlState struct {
	Country        string          `json:"country"`
	AssemblyLevels []string        `json:"assemblyLevels"`
	Annotations    []string        `json:"annotations"`
	Years          Range           `json:"years"`
	Atypical       AtypicalMode    `json:"atypical"`
	Suppressed     SuppressedMode  `json:"suppressed"`
	Technologies   []string        `json:"technologies"`
	Coverage       CoverageControl `json:"coverage"`
	ANIIdentity    NumericControl  `json:"aniIdentity"`
	ANICoverage    NumericControl  `json:"aniCoverage"`
	ContigN50      NumericControl  `json:"contigN50"`
	ContigL50      NumericControl  `json:"contigL50"`
	TotalGenes     NumericControl  `json:"totalGenes"`
	ProteinCoding  NumericControl  `json:"proteinCoding"`
	NonCoding      NumericControl  `json:"nonCoding"`
	Pseudogenes    NumericControl  `json:"pseudogenes"`
	Bioproject     KeywordControl  `json:"bioproject"`
	Biosample      KeywordControl  `json:"biosample"`
	Hierarchy      Hierarchy       `json:"hierarchy"`
}

// Validate checks ranges and radio choices
func (s ControlState) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"years", s.Years},
		{"coverage", s.Coverage.Range},
		{"aniIdentity", s.ANIIdentity.Range},
		{"aniCoverage", s.ANICoverage.Range},
		{"contigN50", s.ContigN50.Range},
		{"contigL50", s.ContigL50.Range},
		{"totalGenes", s.TotalGenes.Range},
		{"proteinCoding", s.ProteinCoding.Range},
		{"nonCoding", s.NonCoding.Range},
		{"pseudogenes", s.Pseudogenes.Range},
	}
	for _, r := range ranges {
		if err := r.r.Validate(); err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
	}
	if !s.Atypical.IsValid() {
		return fmt.Errorf("%w: atypical %q", ErrInvalidMode, s.Atypical)
	}
	if !s.Suppressed.IsValid() {
		return fmt.Errorf("%w: suppressed %q", ErrInvalidMode, s.Suppressed)
	}
	return nil
}

// Clone returns a deep copy so snapshots cannot alias UI-owned slices
func (s ControlState) Clone() ControlState {
	c := s
	c.AssemblyLevels = cloneStrings(s.AssemblyLevels)
	c.Annotations = cloneStrings(s.Annotations)
	c.Technologies = cloneStrings(s.Technologies)
	c.Bioproject.Selected = cloneStrings(s.Bioproject.Selected)
	c.Biosample.Selected = cloneStrings(s.Biosample.Selected)
	c.Hierarchy = Hierarchy{
		Hosts:      cloneStrings(s.Hierarchy.Hosts),
		Categories: cloneStrings(s.Hierarchy.Categories),
		Sources:    cloneStrings(s.Hierarchy.Sources),
		Samples:    cloneStrings(s.Hierarchy.Samples),
	}
	return c
}

// Settle resets keyword edits to external and adopts the effective
// selections of a composed result, so the next update starts from what the
// user saw.
func (s ControlState) Settle(sel Selections) ControlState {
	c := s.Clone()
	c.Bioproject.Selected = cloneStrings(sel.Bioprojects)
	c.Bioproject.Edit = EditExternal
	c.Biosample.Selected = cloneStrings(sel.Biosamples)
	c.Biosample.Edit = EditExternal
	c.Hierarchy.Categories = cloneStrings(sel.Categories)
	c.Hierarchy.Sources = cloneStrings(sel.Sources)
	c.Hierarchy.Samples = cloneStrings(sel.Samples)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
