package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpgBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	h1, err := st.Save(ctx, "uploads", "My Degree.pdf", "application/pdf", bytes.NewReader(pdfBytes))
	require.NoError(t, err)
	h2, err := st.Save(ctx, "uploads", "My Degree.pdf", "application/pdf", bytes.NewReader(pdfBytes))
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same filename must not collide")
	assert.True(t, strings.HasPrefix(h1, "uploads/"))
	assert.True(t, strings.HasSuffix(h1, "_my-degree.pdf"))

	rc, err := st.Open(ctx, h1)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, got)

	require.NoError(t, st.Delete(ctx, h1))
	_, err = st.Open(ctx, h1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, st.Delete(ctx, h1), "deleting twice is not an error")
}

func TestLocalStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	st, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key := ExactKey("letters", "admission_letter_APP20240101ABCDEF12.pdf")
	assert.Equal(t, "letters/admission_letter_APP20240101ABCDEF12.pdf", key)

	require.NoError(t, st.Put(ctx, key, "application/pdf", strings.NewReader("first")))
	require.NoError(t, st.Put(ctx, key, "application/pdf", strings.NewReader("second")))

	rc, err := st.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(got))
}

func TestLocalStoreRejectsEscapingHandles(t *testing.T) {
	st, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, h := range []string{"../etc/passwd", "/etc/passwd", "a/../../b", "", "a\\b"} {
		_, err := st.Open(context.Background(), h)
		assert.ErrorIs(t, err, ErrInvalidHandle, h)
	}
}

func TestSniffAttachment(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		body     []byte
		wantType string
		wantErr  error
	}{
		{"pdf", "degree.pdf", pdfBytes, "application/pdf", nil},
		{"png", "id.PNG", pngBytes, "image/png", nil},
		{"jpeg", "id.jpeg", jpgBytes, "image/jpeg", nil},
		{"jpg", "id.jpg", jpgBytes, "image/jpeg", nil},
		{"wrong extension", "degree.docx", pdfBytes, "", ErrUnsupportedAttachment},
		{"content mismatch", "degree.pdf", pngBytes, "", ErrUnsupportedAttachment},
		{"text renamed", "id.png", []byte("hello world"), "", ErrUnsupportedAttachment},
		{"gif renamed", "id.png", []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), "", ErrUnsupportedAttachment},
		{"empty", "degree.pdf", nil, "", ErrEmptyAttachment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ct, r, err := SniffAttachment(tc.filename, bytes.NewReader(tc.body))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, ct)
			replay, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tc.body, replay, "sniffed prefix must be replayed")
		})
	}
}

func TestBuildKeySanitises(t *testing.T) {
	k := BuildKey("/uploads//certs/", "../../Évil Name!.PDF")
	assert.True(t, strings.HasPrefix(k, "uploads/certs/"), k)
	assert.True(t, strings.HasSuffix(k, "_evil-name.pdf"), k)
	assert.True(t, validHandle(k))
}

func TestBuildKeyKeepsLettersBeyondASCII(t *testing.T) {
	cases := map[string]string{
		"Résumé.pdf":          "_resume.pdf",
		"José Álvarez ID.png": "_jose-alvarez-id.png",
		"身份证.jpg":             "_身份证.jpg",
	}
	for name, suffix := range cases {
		k := BuildKey("certificates", name)
		assert.True(t, strings.HasPrefix(k, "certificates/"), k)
		assert.True(t, strings.HasSuffix(k, suffix), k)
		assert.True(t, validHandle(k), k)
	}
}
