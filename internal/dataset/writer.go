package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/metaminer/metaminer/internal/model"
)

// Write serializes a table as tab-separated values: one header row followed
// by one row per record.
func Write(w io.Writer, table *model.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = DelimiterTSV

	if err := cw.Write(table.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range table.Rows() {
		if err := cw.Write(r.Cells()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}

// Encode returns the tab-separated form of a table
func Encode(table *model.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
