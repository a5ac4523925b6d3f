// Package model defines shared data structures.
package model

// CatalogEntry is one normalized row of the published media index.
type CatalogEntry struct {
	Title      string `json:"title"`
	ShortLabel string `json:"short_label"`
	Link       string `json:"link"`
	Category   string `json:"category"`
	MediaType  string `json:"media_type"`
	// ContentID is the 10-char hex digest of Link; stable across reloads
	// and row reordering.
	ContentID string `json:"content_id"`
}

// PreviewKind classifies what a record needs for rendering.
type PreviewKind string

const (
	KindAudio              PreviewKind = "audio"
	KindEmbeddableDocument PreviewKind = "document"
	KindVideoRestricted    PreviewKind = "video_restricted"
	KindImageRestricted    PreviewKind = "image_restricted"
)

// AccessDecision is the classifier's verdict for an entry. It is recomputed
// on demand and never stored.
type AccessDecision struct {
	Kind                PreviewKind
	ExternallyShareable bool
	RefusalReason       string
}

// Audience distinguishes staff from share-link recipients.
type Audience int

const (
	AudienceInternal Audience = iota
	AudienceExternal
)

// PreviewOutcome is the discriminant of a PreviewResult.
type PreviewOutcome string

const (
	OutcomeInlineAudio    PreviewOutcome = "inline_audio"
	OutcomeEmbedURL       PreviewOutcome = "embed_url"
	OutcomeOpenExternally PreviewOutcome = "open_externally"
	OutcomeRefused        PreviewOutcome = "refused"
	OutcomeUnavailable    PreviewOutcome = "unavailable"
)

// PreviewResult tells the presentation layer what to render for an entry.
// Exactly one of AudioDataURI, URL, Reason is meaningful per outcome.
type PreviewResult struct {
	Outcome      PreviewOutcome `json:"outcome"`
	AudioDataURI string         `json:"audio_data_uri,omitempty"`
	URL          string         `json:"url,omitempty"`
	Reason       string         `json:"reason,omitempty"`
}

// ShareLinks is the pair of links offered in the share dialog. When Disabled
// is set the external link is withheld and DisabledReason carries the policy
// text shown to the user.
type ShareLinks struct {
	Internal       string `json:"internal"`
	External       string `json:"external,omitempty"`
	Disabled       bool   `json:"disabled"`
	DisabledReason string `json:"disabled_reason,omitempty"`
}

// FilterAll is the sentinel meaning "no filter" for category and type.
const FilterAll = "all"
