// Package folkets looks words up in Folkets lexikon, a Swedish-English
// dictionary. The service answers with one paragraph per sense; Swedish
// headed paragraphs become candidate entries and the best one is chosen
// by category and headword length.
package folkets
