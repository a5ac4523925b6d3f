// Package preview decides what a record needs for rendering: inline audio
// bytes, an embeddable URL, an open-original action, or a refusal.
package preview

import (
	"context"
	"encoding/base64"
	"strings"

	"medialib/internal/access"
	"medialib/internal/fetchcache"
	"medialib/internal/model"
)

// Previewer combines the access classifier with the fetch cache.
type Previewer struct {
	cache *fetchcache.Cache
}

// New creates a previewer backed by the given fetch cache.
func New(cache *fetchcache.Cache) *Previewer {
	return &Previewer{cache: cache}
}

// Preview resolves an entry for the given audience.
//
// External recipients never receive restricted content, even through a
// valid identifier. Staff get an open-original action for restricted media
// rather than an inline embed.
func (p *Previewer) Preview(ctx context.Context, entry model.CatalogEntry, audience model.Audience) model.PreviewResult {
	decision := access.Classify(entry)

	if audience == model.AudienceExternal && !decision.ExternallyShareable {
		return model.PreviewResult{
			Outcome: model.OutcomeRefused,
			Reason:  decision.RefusalReason,
		}
	}

	switch decision.Kind {
	case model.KindAudio:
		payload, err := p.cache.Fetch(ctx, entry.Link)
		if err != nil {
			return model.PreviewResult{Outcome: model.OutcomeUnavailable}
		}
		return model.PreviewResult{
			Outcome:      model.OutcomeInlineAudio,
			AudioDataURI: audioDataURI(payload),
		}
	case model.KindVideoRestricted, model.KindImageRestricted:
		// Internal audience only; external was refused above.
		return model.PreviewResult{
			Outcome: model.OutcomeOpenExternally,
			URL:     entry.Link,
		}
	default:
		return model.PreviewResult{
			Outcome: model.OutcomeEmbedURL,
			URL:     EmbedURL(entry.Link),
		}
	}
}

// EmbedURL rewrites Google Drive viewer links into their embeddable preview
// form; every other link passes through unchanged.
func EmbedURL(link string) string {
	if strings.Contains(link, "drive.google.com") && strings.Contains(link, "/view") {
		return strings.Replace(link, "/view", "/preview", 1)
	}
	return link
}

func audioDataURI(payload []byte) string {
	return "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(payload)
}
