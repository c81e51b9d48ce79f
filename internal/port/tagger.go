package port

import "context"

// Tagger derives semantic labels from an encoded image.
type Tagger interface {
	Labels(ctx context.Context, imageData []byte, mimeType string) ([]string, error)
}
