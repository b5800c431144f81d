package filter

import (
	"github.com/metaminer/metaminer/internal/model"
)

func buildTable(rows ...map[model.Field]string) *model.Table {
	b := model.NewTableBuilder(model.FieldNames(model.AllFields)...)
	for _, r := range rows {
		b.Add(r)
	}
	return b.Build()
}

// genome returns a record that passes every default control
func genome(overrides map[model.Field]string) map[model.Field]string {
	row := map[model.Field]string{
		model.FieldCountry:        "Germany",
		model.FieldCountryCode:    "DEU",
		model.FieldAssemblyLevel:  model.AssemblyContig,
		model.FieldAnnotation:     model.AnnotationGenBank,
		model.FieldSubmissionYear: "2020",
		model.FieldAtypical:       model.AtypicalNo,
		model.FieldAssemblyStatus: model.StatusCurrent,
		model.FieldSequencingTech: "Illumina",
		model.FieldHost:           "Animal-associated",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func containsAll(haystack []string, needles ...string) bool {
	set := make(map[string]bool, len(haystack))
	for _, h := range haystack {
		set[h] = true
	}
	for _, n := range needles {
		if !set[n] {
			return false
		}
	}
	return true
}
