package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const pdfMIME = "application/pdf"

// ValidatePDFUpload rejects anything that is not a ".pdf" file whose content
// sniffs as application/pdf. maxSize <= 0 disables the size check.
func ValidatePDFUpload(filename string, data []byte, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return validationError(fmt.Sprintf("invalid file extension for %q: %q", filename, ext))
	}

	if maxSize > 0 && int64(len(data)) > maxSize {
		return validationError(fmt.Sprintf("file %q too large. Max size: %d bytes", filename, maxSize))
	}

	if detected := mimetype.Detect(data); !detected.Is(pdfMIME) {
		return validationError(fmt.Sprintf("invalid content type for %q: %s", filename, detected.String()))
	}

	return nil
}
