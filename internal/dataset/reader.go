package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/metaminer/metaminer/internal/model"
)

// ErrMissingColumn is returned when a dataset lacks a required column
var ErrMissingColumn = errors.New("missing required column")

const (
	// DelimiterTSV separates cells in .tsv and .txt files
	DelimiterTSV = '\t'

	// DelimiterCSV separates cells in .csv files
	DelimiterCSV = ','

	utf8BOM = "\ufeff"
)

// DelimiterFor picks the cell delimiter from the file extension
func DelimiterFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return DelimiterCSV
	}
	return DelimiterTSV
}

// Load reads a dataset file into a record table
func Load(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	table, err := Read(f, DelimiterFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", filepath.Base(path), err)
	}
	return table, nil
}

// Read parses delimiter-separated records. Malformed numeric cells become
// null; ragged rows are padded or truncated to the header width.
func Read(r io.Reader, delimiter rune) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty dataset: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	builder := model.NewTableBuilder(header...)
	schema := builder.Schema()
	for _, f := range model.RequiredFields {
		if !schema.Has(f) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, f)
		}
	}

	line := 1
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(cells) {
			continue
		}
		builder.AddRow(cells)
	}

	return builder.Build(), nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
