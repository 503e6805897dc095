package constants

import (
	"path/filepath"
	"strings"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

// AllowedAttachmentTypes lists the content types accepted for certificates and ID proofs.
var AllowedAttachmentTypes = []string{ContentTypePDF, ContentTypeJPEG, ContentTypePNG}

// ContentTypeFromExt maps an attachment filename to its expected content type.
// Unknown extensions return "".
func ContentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".jpg", ".jpeg":
		return ContentTypeJPEG
	case ".png":
		return ContentTypePNG
	default:
		return ""
	}
}
