package filter

import (
	"github.com/metaminer/metaminer/internal/model"
)

// Membership keeps records whose field is one of allowed. An empty allowed
// set keeps nothing.
func Membership(t *model.Table, field model.Field, allowed []string) *model.Table {
	if len(allowed) == 0 {
		return t.Empty()
	}
	set := toSet(allowed)
	return t.Filter(func(r *model.Record) bool {
		return set[r.Value(field)]
	})
}

// Country keeps records from one country. "World" or an empty name keeps all.
func Country(t *model.Table, country string) *model.Table {
	if country == "" || country == CountryWorld {
		return t
	}
	return t.Filter(func(r *model.Record) bool {
		return r.Value(model.FieldCountry) == country
	})
}

// Technologies keeps records sequenced with one of the selected technologies.
// Selecting "All" bypasses the filter.
func Technologies(t *model.Table, selected []string) *model.Table {
	for _, s := range selected {
		if s == TechnologyAll {
			return t
		}
	}
	return Membership(t, model.FieldSequencingTech, selected)
}

// Atypical applies the atypical radio choice
func Atypical(t *model.Table, mode AtypicalMode) *model.Table {
	switch mode {
	case AtypicalExclude:
		return equals(t, model.FieldAtypical, model.AtypicalNo)
	case AtypicalOnly:
		return equals(t, model.FieldAtypical, model.AtypicalYes)
	default:
		return t
	}
}

// Suppressed applies the suppressed radio choice
func Suppressed(t *model.Table, mode SuppressedMode) *model.Table {
	switch mode {
	case SuppressedExclude:
		return equals(t, model.FieldAssemblyStatus, model.StatusCurrent)
	case SuppressedOnly:
		return equals(t, model.FieldAssemblyStatus, model.StatusSuppressed)
	default:
		return t
	}
}

func equals(t *model.Table, field model.Field, value string) *model.Table {
	return t.Filter(func(r *model.Record) bool {
		return r.Value(field) == value
	})
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
