package dataset

// Package dataset reads and writes the delimiter-separated record table,
// loads per-country region geometry, and watches the dataset file so the
// dashboard can reload it when the pipeline rewrites it.
