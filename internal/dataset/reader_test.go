package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metaminer/metaminer/internal/model"
)

const sampleTSV = "country_common_name\tAssembly_level\tAnnotation_category\tSubmission_year\tidentified_host\tCoverage_Depth\tsource_y\n" +
	"France\tContig\tGenBank\t2019\tAnimal-associated\t120\tfeces\n" +
	"Germany\tScaffold\tNCBI RefSeq\t2021\tUnknown\tabc\t\n" +
	"\t\t\t\t\t\t\n" +
	"Spain\tComplete Genome\tOthers\t\tHospital-associated\n"

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(sampleTSV), DelimiterTSV)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Read().Len() = %d, expected 3 (blank line skipped)", table.Len())
	}

	rows := table.Rows()
	if rows[0].Value(model.FieldSource) != "feces" {
		t.Errorf("source_y alias: Value(source) = %q, expected feces", rows[0].Value(model.FieldSource))
	}
	if n := rows[0].Number(model.FieldCoverageDepth); !n.Valid || n.Value != 120 {
		t.Errorf("Number(coverage) = %+v, expected 120", n)
	}
	if !rows[1].IsNull(model.FieldCoverageDepth) {
		t.Error("malformed coverage should be null")
	}
	if !rows[2].IsNull(model.FieldSubmissionYear) {
		t.Error("missing year should be null")
	}
	if rows[2].Value(model.FieldSource) != "" {
		t.Error("short row should be padded with empty cells")
	}
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("country_common_name\tAssembly_level\nFrance\tContig\n"), DelimiterTSV)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Read() error = %v, expected ErrMissingColumn", err)
	}

	_, err = Read(strings.NewReader(""), DelimiterTSV)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Read(empty) error = %v, expected ErrMissingColumn", err)
	}
}

func TestRead_BOMAndCSV(t *testing.T) {
	data := "\ufeffcountry_common_name,Assembly_level,Annotation_category,Submission_year,identified_host\n" +
		"\"Korea, Republic of\",Contig,GenBank,2020,Unknown\n"

	table, err := Read(strings.NewReader(data), DelimiterCSV)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := table.Rows()[0].Value(model.FieldCountry); got != "Korea, Republic of" {
		t.Errorf("Value(country) = %q, expected quoted comma value", got)
	}
}

func TestDelimiterFor(t *testing.T) {
	tests := []struct {
		path     string
		expected rune
	}{
		{"data.tsv", DelimiterTSV},
		{"data.CSV", DelimiterCSV},
		{"data.txt", DelimiterTSV},
		{"data", DelimiterTSV},
	}

	for _, test := range tests {
		if got := DelimiterFor(test.path); got != test.expected {
			t.Errorf("DelimiterFor(%q) = %q, expected %q", test.path, got, test.expected)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.tsv")
	if err := os.WriteFile(path, []byte(sampleTSV), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("Load().Len() = %d, expected 3", table.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.tsv")); err == nil {
		t.Error("Load(missing) expected error")
	}
}
