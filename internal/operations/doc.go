// Package operations drives a pipeline run.
//
// A Manager owns an ordered list of steps and executes them one after the
// other against a shared RunState:
//
//   - bootstrap: generate sample raw data when inputs are missing
//   - load: read the four raw tables
//   - clean: run the table cleaners (concurrently by default)
//   - master: join the clean tables into the master table
//   - quality: measure every produced table
//   - persist: write all outputs to the clean directory
//
// Each step gets its own span and duration metric. The context is checked
// between steps; a cancelled run stops before the next step starts and
// reports a cancellation error. Only I/O failures abort a run; defects in
// the data itself are absorbed by the cleaners.
package operations
