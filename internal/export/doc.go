// Package export groups merged records by word class and writes the
// import bundle: one directory per category holding _index.csv,
// _import.csv, the pronunciation recordings and optionally an Anki deck.
package export
