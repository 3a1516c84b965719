package media

import (
	"context"
	"strings"
)

// Asset is what the hosting service hands back for an uploaded file.
type Asset struct {
	URL      string
	PublicID string
	Duration float64 // seconds, zero for images
}

// Service is the external media-hosting boundary: it takes a local temporary
// file and returns a public URL plus an opaque identifier usable for deletion.
type Service interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, publicID string) error
}

// ExtractPublicID recovers the opaque identifier from a stored asset URL:
// the last path segment with any extension stripped.
func ExtractPublicID(assetURL string) string {
	parts := strings.Split(assetURL, "/")
	last := parts[len(parts)-1]
	return strings.SplitN(last, ".", 2)[0]
}
