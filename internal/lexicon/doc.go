// Package lexicon holds what the two dictionary adapters share: the Entry
// model, the right-biased merge, category abbreviations, length based
// disambiguation and the HTTP fetch layer with its error types.
package lexicon
