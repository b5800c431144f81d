package model

import (
	"reflect"
	"testing"
)

func sampleTable() *Table {
	b := NewTableBuilder(FieldNames(AllFields)...)
	b.Add(map[Field]string{FieldCountry: "France", FieldHost: "Animal-associated", FieldTotalGenes: "4000"})
	b.Add(map[Field]string{FieldCountry: "Germany", FieldHost: "Unknown", FieldTotalGenes: ""})
	b.Add(map[Field]string{FieldCountry: "France", FieldHost: "Animal-associated", FieldTotalGenes: "5200"})
	b.Add(map[Field]string{FieldCountry: "", FieldHost: "Hospital-associated", FieldTotalGenes: "3900"})
	return b.Build()
}

func TestTable_Filter(t *testing.T) {
	table := sampleTable()
	france := table.Filter(func(r *Record) bool { return r.Value(FieldCountry) == "France" })

	if france.Len() != 2 {
		t.Errorf("Filter().Len() = %d, expected 2", france.Len())
	}
	if table.Len() != 4 {
		t.Errorf("source table Len() = %d after Filter, expected 4", table.Len())
	}
	if !reflect.DeepEqual(france.IDs(), []int{0, 2}) {
		t.Errorf("Filter().IDs() = %v, expected [0 2]", france.IDs())
	}
	if !france.Contains(2) || france.Contains(1) {
		t.Errorf("Filter().Contains() disagrees with IDs %v", france.IDs())
	}
}

func TestTable_Distinct(t *testing.T) {
	table := sampleTable()

	got := table.Distinct(FieldCountry)
	expected := []string{"France", "Germany"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Distinct(country) = %v, expected %v", got, expected)
	}

	sorted := table.SortedDistinct(FieldHost)
	expected = []string{"Animal-associated", "Hospital-associated", "Unknown"}
	if !reflect.DeepEqual(sorted, expected) {
		t.Errorf("SortedDistinct(host) = %v, expected %v", sorted, expected)
	}
}

func TestTable_Counts(t *testing.T) {
	table := sampleTable()

	if n := table.Count(FieldCountry, "France"); n != 2 {
		t.Errorf("Count(France) = %d, expected 2", n)
	}
	if n := table.CountNull(FieldTotalGenes); n != 1 {
		t.Errorf("CountNull(total genes) = %d, expected 1", n)
	}
	if n := table.CountNull(FieldCountry); n != 1 {
		t.Errorf("CountNull(country) = %d, expected 1", n)
	}
	counts := table.Counts(FieldHost)
	if counts["Animal-associated"] != 2 || counts["Unknown"] != 1 {
		t.Errorf("Counts(host) = %v, unexpected", counts)
	}
}

func TestTable_MinMax(t *testing.T) {
	lo, hi, ok := sampleTable().MinMax(FieldTotalGenes)
	if !ok || lo != 3900 || hi != 5200 {
		t.Errorf("MinMax(total genes) = (%v, %v, %v), expected (3900, 5200, true)", lo, hi, ok)
	}

	_, _, ok = sampleTable().MinMax(FieldContigN50)
	if ok {
		t.Error("MinMax(N50) ok = true, expected false for an all-null column")
	}
}

func TestTable_EmptyIsSafe(t *testing.T) {
	empty := sampleTable().Empty()

	if empty.Len() != 0 {
		t.Errorf("Empty().Len() = %d, expected 0", empty.Len())
	}
	if len(empty.Distinct(FieldCountry)) != 0 {
		t.Error("Distinct on empty table should be empty")
	}
	if len(empty.Header()) != len(AllFields) {
		t.Errorf("Empty().Header() has %d columns, expected %d", len(empty.Header()), len(AllFields))
	}

	var nilTable *Table
	if nilTable.Len() != 0 {
		t.Error("nil table Len() should be 0")
	}
}
