package model

// Package model defines the data structures shared across the app: the
// immutable genome-assembly record table, its field names and known category
// values, and snapshot export tasks with their status enum. Tables are never
// mutated in place; every filter produces a new table sharing records with its
// parent.
