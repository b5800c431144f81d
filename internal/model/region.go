package model

// Region is a first-level administrative area inside a country
type Region struct {
	Code string // e.g. ISO 3166-2 code such as "FR-IDF"
	Name string
}
