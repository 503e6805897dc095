package storage

import (
	"bytes"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"admissions_backend/internals/constants"
)

const sniffLen = 3072

var (
	ErrEmptyAttachment       = errors.New("file is empty")
	ErrUnsupportedAttachment = errors.New("only PDF, JPG, JPEG and PNG files are allowed")
)

// SniffAttachment checks that both the filename extension and the leading bytes
// name the same allowed type (PDF, JPEG or PNG). The returned reader replays the
// sniffed prefix followed by the rest of r.
func SniffAttachment(filename string, r io.Reader) (string, io.Reader, error) {
	want := constants.ContentTypeFromExt(filename)
	if want == "" {
		return "", nil, ErrUnsupportedAttachment
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]
	if n == 0 {
		return "", nil, ErrEmptyAttachment
	}

	detected := mimetype.Detect(head).String()
	if !mimetype.EqualsAny(detected, constants.AllowedAttachmentTypes...) || !mimetype.EqualsAny(detected, want) {
		return "", nil, ErrUnsupportedAttachment
	}
	return want, io.MultiReader(bytes.NewReader(head), r), nil
}
