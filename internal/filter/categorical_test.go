package filter

import (
	"testing"

	"github.com/metaminer/metaminer/internal/model"
)

func TestMembership(t *testing.T) {
	table := buildTable(
		genome(map[model.Field]string{model.FieldAssemblyLevel: model.AssemblyContig}),
		genome(map[model.Field]string{model.FieldAssemblyLevel: model.AssemblyScaffold}),
		genome(map[model.Field]string{model.FieldAssemblyLevel: model.AssemblyComplete}),
	)

	tests := []struct {
		name     string
		allowed  []string
		expected int
	}{
		{"single", []string{model.AssemblyContig}, 1},
		{"two", []string{model.AssemblyContig, model.AssemblyComplete}, 2},
		{"unknown value", []string{"Plasmid"}, 0},
		{"empty set keeps nothing", nil, 0},
	}

	for _, test := range tests {
		got := Membership(table, model.FieldAssemblyLevel, test.allowed).Len()
		if got != test.expected {
			t.Errorf("%s: Membership().Len() = %d, expected %d", test.name, got, test.expected)
		}
	}
}

func TestTechnologies_AllSentinel(t *testing.T) {
	table := buildTable(
		genome(map[model.Field]string{model.FieldSequencingTech: "Illumina"}),
		genome(map[model.Field]string{model.FieldSequencingTech: "Oxford Nanopore"}),
		genome(map[model.Field]string{model.FieldSequencingTech: ""}),
	)

	if got := Technologies(table, []string{"Illumina", TechnologyAll}).Len(); got != 3 {
		t.Errorf("Technologies(All).Len() = %d, expected 3", got)
	}
	if got := Technologies(table, []string{"Illumina"}).Len(); got != 1 {
		t.Errorf("Technologies(Illumina).Len() = %d, expected 1", got)
	}
	if got := Technologies(table, nil).Len(); got != 0 {
		t.Errorf("Technologies(empty).Len() = %d, expected 0", got)
	}
}

func TestCountry(t *testing.T) {
	table := buildTable(
		genome(map[model.Field]string{model.FieldCountry: "France"}),
		genome(map[model.Field]string{model.FieldCountry: "Spain"}),
	)

	tests := []struct {
		country  string
		expected int
	}{
		{CountryWorld, 2},
		{"", 2},
		{"France", 1},
		{"Peru", 0},
	}

	for _, test := range tests {
		if got := Country(table, test.country).Len(); got != test.expected {
			t.Errorf("Country(%q).Len() = %d, expected %d", test.country, got, test.expected)
		}
	}
}

func TestAtypicalAndSuppressed(t *testing.T) {
	table := buildTable(
		genome(map[model.Field]string{model.FieldAtypical: model.AtypicalYes, model.FieldAssemblyStatus: model.StatusSuppressed}),
		genome(map[model.Field]string{model.FieldAtypical: model.AtypicalNo, model.FieldAssemblyStatus: model.StatusCurrent}),
		genome(map[model.Field]string{model.FieldAtypical: model.AtypicalNo, model.FieldAssemblyStatus: model.StatusCurrent}),
	)

	atypical := []struct {
		mode     AtypicalMode
		expected int
	}{
		{AtypicalAll, 3},
		{AtypicalExclude, 2},
		{AtypicalOnly, 1},
	}
	for _, test := range atypical {
		if got := Atypical(table, test.mode).Len(); got != test.expected {
			t.Errorf("Atypical(%s).Len() = %d, expected %d", test.mode, got, test.expected)
		}
	}

	suppressed := []struct {
		mode     SuppressedMode
		expected int
	}{
		{SuppressedAll, 3},
		{SuppressedExclude, 2},
		{SuppressedOnly, 1},
	}
	for _, test := range suppressed {
		if got := Suppressed(table, test.mode).Len(); got != test.expected {
			t.Errorf("Suppressed(%s).Len() = %d, expected %d", test.mode, got, test.expected)
		}
	}
}
