// Package share builds the internal and external links for an entry.
package share

import (
	"medialib/internal/access"
	"medialib/internal/model"
)

// Builder composes share links. Pure: no network or cache access.
type Builder struct {
	baseURL string
}

// NewBuilder creates a builder rooted at the public site URL.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: baseURL}
}

// Build returns the link pair for an entry. The internal link is always the
// raw catalog link (the recipient is assumed to already have access). The
// external link exists only when the classifier allows sharing; otherwise it
// is disabled and carries the refusal reason for display.
func (b *Builder) Build(entry model.CatalogEntry) model.ShareLinks {
	links := model.ShareLinks{Internal: entry.Link}

	decision := access.Classify(entry)
	if !decision.ExternallyShareable {
		links.Disabled = true
		links.DisabledReason = decision.RefusalReason
		return links
	}
	links.External = b.baseURL + "?id=" + entry.ContentID
	return links
}
