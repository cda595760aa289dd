// Package table provides the in-memory tabular model the pipeline passes
// between stages.
//
// A Table is an ordered set of named columns over rows of Value cells.
// A Value is a small tagged union (string, int, float, bool, date) whose
// zero value is Null, the single representation of a missing cell. All
// transforming methods return a new Table and leave the receiver untouched,
// so every pipeline stage consumes immutable inputs.
//
// # Text form
//
// Value.String is the canonical rendering used for every CSV the pipeline
// writes: Null is empty, dates are YYYY-MM-DD, integral floats keep a ".0"
// suffix and booleans render as True/False.
package table
