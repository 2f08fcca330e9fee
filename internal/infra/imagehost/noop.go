package imagehost

import "context"

// NoOp is an image host that returns the submitted image unchanged.
// Useful for development and tests where no external host is configured;
// base64 data URIs render directly in an img tag.
type NoOp struct{}

// NewNoOp creates a new NoOp image host.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Upload returns the submitted image as-is.
func (n *NoOp) Upload(_ context.Context, base64Image, _ string) (string, error) {
	return base64Image, nil
}
