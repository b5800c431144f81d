package filter

import (
	"reflect"
	"testing"

	"github.com/metaminer/metaminer/internal/model"
)

func TestMatchKeywords(t *testing.T) {
	values := []string{"Study A", "Study B", "Other"}

	tests := []struct {
		text     string
		expected []string
	}{
		{"study", []string{"Study A", "Study B"}},
		{"STUDY b", []string{"Study B"}},
		{" other , study a ", []string{"Study A", "Other"}},
		{"", nil},
		{" , ,", nil},
		{"missing", nil},
	}

	for _, test := range tests {
		got := MatchKeywords(values, test.text)
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("MatchKeywords(%q) = %v, expected %v", test.text, got, test.expected)
		}
	}
}

func TestResolveSelection(t *testing.T) {
	available := []string{"Study A", "Study B", "Other"}

	tests := []struct {
		name     string
		ctl      KeywordControl
		matches  []string
		expected []string
	}{
		{
			name:     "text edit unions matches with previous selection",
			ctl:      KeywordControl{Selected: []string{"Other"}, Edit: EditText},
			matches:  []string{"Study A", "Study B"},
			expected: []string{"Other", "Study A", "Study B"},
		},
		{
			name:     "dropdown edit keeps exactly the selection",
			ctl:      KeywordControl{Selected: []string{"Study B", "Study B"}, Edit: EditDropdown},
			matches:  []string{"Study A"},
			expected: []string{"Study B"},
		},
		{
			name:     "external edit drops values that disappeared",
			ctl:      KeywordControl{Selected: []string{"Gone", "Other"}, Edit: EditExternal},
			matches:  []string{"Study A"},
			expected: []string{"Other"},
		},
		{
			name:     "external edit with nothing selected",
			ctl:      KeywordControl{Edit: EditExternal},
			expected: []string{},
		},
	}

	for _, test := range tests {
		got := ResolveSelection(test.ctl, test.matches, available)
		if !reflect.DeepEqual(got, test.expected) {
			t.Errorf("%s: ResolveSelection() = %v, expected %v", test.name, got, test.expected)
		}
	}
}

func TestKeyword(t *testing.T) {
	table := buildTable(
		genome(map[model.Field]string{model.FieldBioproject: "Study A"}),
		genome(map[model.Field]string{model.FieldBioproject: "Study B"}),
		genome(map[model.Field]string{model.FieldBioproject: "Other"}),
		genome(map[model.Field]string{model.FieldBioproject: "Study A"}),
	)

	res := Keyword(table, model.FieldBioproject, KeywordControl{Text: "study", Edit: EditText})
	if res.View.Len() != 3 {
		t.Errorf("Keyword(study).View.Len() = %d, expected 3", res.View.Len())
	}
	if !reflect.DeepEqual(res.Options, []string{"Study A", "Study B", "Other"}) {
		t.Errorf("Keyword().Options = %v, expected all distinct titles", res.Options)
	}

	// Text left in the box does not filter when another control fires
	res = Keyword(table, model.FieldBioproject, KeywordControl{Text: "study", Edit: EditExternal})
	if res.View.Len() != table.Len() {
		t.Errorf("Keyword(external, nothing selected).View.Len() = %d, expected pass-through %d", res.View.Len(), table.Len())
	}
}
