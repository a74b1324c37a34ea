// Package processor runs the lookup pipeline. It reads the query file,
// resolves each query against the lexicon sources one at a time, merges
// their entries and hands the result table to the exporter.
package processor
