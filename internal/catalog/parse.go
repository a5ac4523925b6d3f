package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"medialib/internal/contentid"
	"medialib/internal/model"
)

// Rows carrying the internal archive marker never materialize as entries;
// neither do links to folder containers rather than individual objects.
const (
	excludedCategoryMarker = "案例資料庫"
	folderLinkMarker       = "/folders/"
)

// Expected feed columns after header normalization. Absent columns are
// synthesized as empty so a sloppy sheet still loads.
const (
	colTitle    = "title"
	colLink     = "link"
	colCategory = "category"
	colType     = "type"
	colShort    = "short"
)

// parseFeed turns the raw CSV export into normalized entries, preserving
// feed order. Malformed rows are skipped individually; only a completely
// unreadable header fails the parse.
func parseFeed(r io.Reader) ([]model.CatalogEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var entries []model.CatalogEntry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue // skip the bad row, keep the rest
			}
			return entries, err
		}

		e := model.CatalogEntry{
			Title:      cell(row, colTitle),
			ShortLabel: cell(row, colShort),
			Link:       cell(row, colLink),
			Category:   cell(row, colCategory),
			MediaType:  cell(row, colType),
		}
		if strings.Contains(e.Category, excludedCategoryMarker) {
			continue
		}
		if strings.Contains(e.Link, folderLinkMarker) {
			continue
		}
		if e.ShortLabel == "" {
			e.ShortLabel = e.Title
		}
		e.ContentID = contentid.ID(e.Link)
		entries = append(entries, e)
	}
	return entries, nil
}
