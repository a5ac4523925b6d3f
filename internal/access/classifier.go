// Package access decides, per catalog entry, what may be previewed
// internally and what may be shared outside.
package access

import (
	"strings"

	"medialib/internal/model"
)

// Refusal texts are intentional user communication, not faults.
const (
	ReasonVideoRestricted = "video content is license/venue-restricted."
	ReasonImageRestricted = "image content is copyright-restricted."
)

// videoTags mark the restricted video channels in the feed's type column.
// They also appear inside titles for rows typed loosely, so both fields are
// checked.
var videoTags = []string{"新鮮視", "側帶"}

// audioChannelTag marks the in-store audio channel.
const audioChannelTag = "企頻"

var (
	videoExts = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}
	imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	audioExts = []string{".mp3", ".wav", ".m4a"}
)

// Classify maps an entry to its access decision. The rules form an ordered
// priority list; the first match wins. Internal preview is permitted for
// every kind; restriction governs external shareability and what is
// rendered inline.
func Classify(entry model.CatalogEntry) model.AccessDecision {
	title := strings.ToLower(entry.Title)

	switch {
	case containsAny(entry.MediaType, videoTags) ||
		containsAny(entry.Title, videoTags) ||
		hasAnySuffix(title, videoExts):
		return model.AccessDecision{
			Kind:          model.KindVideoRestricted,
			RefusalReason: ReasonVideoRestricted,
		}
	case hasAnySuffix(title, imageExts):
		return model.AccessDecision{
			Kind:          model.KindImageRestricted,
			RefusalReason: ReasonImageRestricted,
		}
	case hasAnySuffix(title, audioExts) ||
		strings.Contains(entry.MediaType, audioChannelTag):
		return model.AccessDecision{
			Kind:                model.KindAudio,
			ExternallyShareable: true,
		}
	default:
		return model.AccessDecision{
			Kind:                model.KindEmbeddableDocument,
			ExternallyShareable: true,
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
