package services

// Accepted image content types. Anything else is silently skipped when a
// media slot is processed, leaving the slot empty.
var acceptedImageTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/svg+xml": true,
}

func isValidImageType(contentType string) bool {
	return acceptedImageTypes[contentType]
}
