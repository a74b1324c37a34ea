// Package batch reads the word list and turns each raw line into a Query:
// the display index, the bare lookup word and an optional category filter.
package batch
