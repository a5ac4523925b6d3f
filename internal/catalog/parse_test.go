package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialib/internal/contentid"
)

func TestParseFeedNormalizes(t *testing.T) {
	t.Parallel()

	feed := " Title , LINK ,category, Type ,short\n" +
		"Spring Promo.mp3,https://host/a,Snacks,企頻,\n" +
		"Launch.mp4,https://host/b,Snacks,新鮮視,Launch\n"

	entries, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Spring Promo.mp3", entries[0].Title)
	assert.Equal(t, "Spring Promo.mp3", entries[0].ShortLabel) // backfilled
	assert.Equal(t, "企頻", entries[0].MediaType)
	assert.Equal(t, contentid.ID("https://host/a"), entries[0].ContentID)

	assert.Equal(t, "Launch", entries[1].ShortLabel)
}

func TestParseFeedExclusions(t *testing.T) {
	t.Parallel()

	feed := "title,link,category,type\n" +
		"keep.mp3,https://host/a,Snacks,企頻\n" +
		"archived.mp3,https://host/b,案例資料庫X,企頻\n" +
		"folder,https://drive.example.com/folders/abc,Snacks,企頻\n"

	entries, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.mp3", entries[0].Title)

	for _, e := range entries {
		assert.NotContains(t, e.Category, excludedCategoryMarker)
		assert.NotContains(t, e.Link, folderLinkMarker)
	}
}

func TestParseFeedImagesAdmitted(t *testing.T) {
	t.Parallel()

	// Images stay in the catalog; refusing them is the classifier's job.
	feed := "title,link,category,type\n" +
		"poster.png,https://host/p,Snacks,文宣\n"

	entries, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestParseFeedMissingColumns(t *testing.T) {
	t.Parallel()

	feed := "title,link\n" +
		"only.mp3,https://host/a\n"

	entries, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Category)
	assert.Empty(t, entries[0].MediaType)
}

func TestParseFeedRaggedAndShortRows(t *testing.T) {
	t.Parallel()

	feed := "title,link,category,type\n" +
		"short-row.mp3,https://host/a\n" +
		"full.mp3,https://host/b,Snacks,企頻,extra-cell\n"

	entries, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].Category)
	assert.Equal(t, "Snacks", entries[1].Category)
}

func TestParseFeedEmptyBody(t *testing.T) {
	t.Parallel()

	_, err := parseFeed(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseFeedOrderPreserved(t *testing.T) {
	t.Parallel()

	feed := "title,link,category,type\n" +
		"c.mp3,https://host/c,Snacks,企頻\n" +
		"a.mp3,https://host/a,Snacks,企頻\n" +
		"b.mp3,https://host/b,Snacks,企頻\n"

	entries, err := parseFeed(strings.NewReader(feed))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "c.mp3", entries[0].Title)
	assert.Equal(t, "a.mp3", entries[1].Title)
	assert.Equal(t, "b.mp3", entries[2].Title)
}

func TestParseFeedIDsStableUnderReorder(t *testing.T) {
	t.Parallel()

	forward := "title,link,category,type\n" +
		"a.mp3,https://host/a,Snacks,企頻\n" +
		"b.mp3,https://host/b,Snacks,企頻\n"
	backward := "title,link,category,type\n" +
		"b.mp3,https://host/b,Snacks,企頻\n" +
		"a.mp3,https://host/a,Snacks,企頻\n"

	fwd, err := parseFeed(strings.NewReader(forward))
	require.NoError(t, err)
	bwd, err := parseFeed(strings.NewReader(backward))
	require.NoError(t, err)

	byLink := make(map[string]string)
	for _, e := range fwd {
		byLink[e.Link] = e.ContentID
	}
	for _, e := range bwd {
		assert.Equal(t, byLink[e.Link], e.ContentID)
	}
}
