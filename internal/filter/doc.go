// Package filter implements the dashboard's filtering core: one predicate per
// facet (categorical membership, numeric range with a null policy, keyword
// search feeding a multi-select, and the host/category/source/sample cascade)
// and the Driver that composes them in a fixed order, starting from the base
// table on every update. Later facets derive their dropdown options from the
// table as narrowed by every earlier facet.
package filter
