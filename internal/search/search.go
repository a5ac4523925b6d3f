// Package search filters catalog entries by keyword, category and type.
package search

import (
	"strings"

	"medialib/internal/model"
)

// Filter applies the three browse predicates with logical AND and returns
// the matching entries in catalog order.
//
// query is split on whitespace; a term matches if it occurs anywhere in the
// lowercased concatenation of title, category and media type, and the query
// passes when any term matches. category is an exact match, mediaType a
// case-insensitive substring of the type or title; both accept
// model.FilterAll (or blank) as "no filter".
func Filter(entries []model.CatalogEntry, query, category, mediaType string) []model.CatalogEntry {
	terms := strings.Fields(strings.ToLower(query))

	var out []model.CatalogEntry
	for _, e := range entries {
		if !matchesQuery(e, terms) {
			continue
		}
		if !matchesCategory(e, category) {
			continue
		}
		if !matchesType(e, mediaType) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e model.CatalogEntry, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(e.Title + " " + e.Category + " " + e.MediaType)
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func matchesCategory(e model.CatalogEntry, category string) bool {
	if category == "" || category == model.FilterAll {
		return true
	}
	return e.Category == category
}

func matchesType(e model.CatalogEntry, mediaType string) bool {
	if mediaType == "" || mediaType == model.FilterAll {
		return true
	}
	needle := strings.ToLower(mediaType)
	return strings.Contains(strings.ToLower(e.MediaType), needle) ||
		strings.Contains(strings.ToLower(e.Title), needle)
}
