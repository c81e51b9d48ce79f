package pipeline

// Well-known thumbnail size names. The medium preview is the one the
// extraction and tagging stages read back.
const (
	SizeThumb  = "thumb"
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

const maxDominantColors = 5

// SkipReasonThumbnailUnavailable is recorded by the tagging stage when its
// gate misses.
const SkipReasonThumbnailUnavailable = "thumbnail_unavailable"

// IncidentTitleMissingVisualMetadata names the incident raised when a
// completed thumbnail run left no usable medium dimensions behind.
const IncidentTitleMissingVisualMetadata = "Expected visual metadata missing"

// IncidentTitleExtractionRetriesExhausted names the incident raised when the
// extraction retry gate gives up waiting for thumbnails.
const IncidentTitleExtractionRetriesExhausted = "Metadata extraction retries exhausted"

// IncidentSourceTypeAsset scopes incidents to an asset record.
const IncidentSourceTypeAsset = "asset"
