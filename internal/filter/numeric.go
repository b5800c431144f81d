package filter

import (
	"github.com/metaminer/metaminer/internal/model"
)

// NumericRange keeps records whose value lies in the range, plus records with
// no value when IncludeNull is set. It also returns how many null records were
// dropped. A range covering the whole column still drops nulls when
// IncludeNull is off.
func NumericRange(t *model.Table, field model.Field, ctl NumericControl) (*model.Table, int) {
	excluded := 0
	view := t.Filter(func(r *model.Record) bool {
		n := r.Number(field)
		if !n.Valid {
			if !ctl.IncludeNull {
				excluded++
			}
			return ctl.IncludeNull
		}
		return ctl.Range.Contains(n.Value)
	})
	return view, excluded
}

// CoverageRange is NumericRange for coverage depth with the extra option of
// keeping every genome deeper than CoverageCeiling.
func CoverageRange(t *model.Table, ctl CoverageControl) (*model.Table, int) {
	excluded := 0
	view := t.Filter(func(r *model.Record) bool {
		n := r.Number(model.FieldCoverageDepth)
		if !n.Valid {
			if !ctl.IncludeNull {
				excluded++
			}
			return ctl.IncludeNull
		}
		if ctl.IncludeAbove && n.Value > CoverageCeiling {
			return true
		}
		return ctl.Range.Contains(n.Value)
	})
	return view, excluded
}

// YearRange keeps records submitted within the range. Records without a
// submission year are dropped.
func YearRange(t *model.Table, r Range) *model.Table {
	return t.Filter(func(rec *model.Record) bool {
		n := rec.Number(model.FieldSubmissionYear)
		return n.Valid && r.Contains(n.Value)
	})
}
