package wizard

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadBytes caps every file field.
const MaxUploadBytes = 10 << 20

// AllowedMIME lists the document types accepted by every file field.
var AllowedMIME = []string{"application/pdf", "image/jpeg", "image/png"}

// CheckUpload applies the upload policy and returns the detected MIME type.
func CheckUpload(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrFileType)
	}
	if len(content) > MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, len(content), MaxUploadBytes)
	}
	mt := mimetype.Detect(content)
	if !mimetype.EqualsAny(mt.String(), AllowedMIME...) {
		return "", fmt.Errorf("%w: %s", ErrFileType, mt.String())
	}
	return mt.String(), nil
}
