// Package svenska looks words up in Svensk ordbok on svenska.se. A search
// page is scanned for the result link naming the word (and category, when
// asked for), the linked article is fetched and its first lemma block
// becomes the entry.
package svenska
