package dataset

import (
	"strings"
	"testing"

	"github.com/metaminer/metaminer/internal/model"
)

func TestWrite_HeaderPlusRows(t *testing.T) {
	b := model.NewTableBuilder(model.FieldNames(model.AllFields)...)
	for i := 0; i < 7; i++ {
		b.Add(map[model.Field]string{
			model.FieldCountry:    "France",
			model.FieldBioproject: "Study, with comma",
		})
	}
	table := b.Build()

	data, err := Encode(table)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != table.Len()+1 {
		t.Fatalf("Encode() produced %d lines, expected %d", len(lines), table.Len()+1)
	}
	for i, line := range lines {
		if n := len(strings.Split(line, "\t")); n != len(model.AllFields) {
			t.Errorf("line %d has %d tab-separated cells, expected %d", i, n, len(model.AllFields))
		}
	}
	if !strings.HasPrefix(lines[0], "country_common_name\t") {
		t.Errorf("header = %q, expected to start with country_common_name", lines[0])
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	original, err := Read(strings.NewReader(sampleTSV), DelimiterTSV)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	again, err := Read(strings.NewReader(string(data)), DelimiterTSV)
	if err != nil {
		t.Fatalf("Read(encoded) error = %v", err)
	}
	if again.Len() != original.Len() {
		t.Errorf("round trip Len() = %d, expected %d", again.Len(), original.Len())
	}
	if again.Header()[6] != "source" {
		t.Errorf("round trip header[6] = %s, expected canonical source", again.Header()[6])
	}
}

func TestWrite_EmptyTable(t *testing.T) {
	table := model.NewTableBuilder("a", "b").Build()

	data, err := Encode(table)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(data) != "a\tb\n" {
		t.Errorf("Encode(empty) = %q, expected header only", string(data))
	}
}
