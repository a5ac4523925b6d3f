package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medialib/internal/model"
)

var entries = []model.CatalogEntry{
	{Title: "Spring Promo.mp3", Link: "https://host/a", Category: "Snacks", MediaType: "企頻"},
	{Title: "Launch.mp4", Link: "https://host/b", Category: "Snacks", MediaType: "新鮮視"},
	{Title: "Q3 計畫書", Link: "https://host/c", Category: "Drinks", MediaType: "簡報"},
}

func TestFilterQueryTerms(t *testing.T) {
	t.Parallel()

	// Multi-term query: each term is checked against the lowercase
	// title+category+type concatenation.
	got := Filter(entries, "promo snack", model.FilterAll, model.FilterAll)
	assert.Len(t, got, 2) // "snack" also matches the Launch row's category
	assert.Equal(t, "Spring Promo.mp3", got[0].Title)

	got = Filter(entries, "PROMO", model.FilterAll, model.FilterAll)
	assert.Len(t, got, 1)

	got = Filter(entries, "nothing-matches-this", model.FilterAll, model.FilterAll)
	assert.Empty(t, got)
}

func TestFilterCategoryExact(t *testing.T) {
	t.Parallel()

	got := Filter(entries, "", "Snacks", model.FilterAll)
	assert.Len(t, got, 2)

	// Exact match only: no substring behavior for categories.
	got = Filter(entries, "", "Snack", model.FilterAll)
	assert.Empty(t, got)

	got = Filter(entries, "", model.FilterAll, model.FilterAll)
	assert.Len(t, got, 3)
}

func TestFilterTypeMatchesTypeOrTitle(t *testing.T) {
	t.Parallel()

	got := Filter(entries, "", model.FilterAll, "新鮮視")
	assert.Len(t, got, 1)
	assert.Equal(t, "Launch.mp4", got[0].Title)

	// Type filter also matches against the title.
	got = Filter(entries, "", model.FilterAll, "launch")
	assert.Len(t, got, 1)
}

func TestFilterPredicatesAnd(t *testing.T) {
	t.Parallel()

	got := Filter(entries, "promo", "Drinks", model.FilterAll)
	assert.Empty(t, got)

	got = Filter(entries, "promo", "Snacks", "企頻")
	assert.Len(t, got, 1)
}

func TestFilterPreservesOrder(t *testing.T) {
	t.Parallel()

	got := Filter(entries, "", model.FilterAll, model.FilterAll)
	for i, e := range got {
		assert.Equal(t, entries[i].Link, e.Link)
	}
}
