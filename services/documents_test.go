package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExtractPlainText(t *testing.T) {
	ex := NewDocumentExtractor(zap.NewNop())

	doc, err := ex.Extract("notes.txt", "text/plain; charset=utf-8", []byte("Hello\x00 world\xff\n"))
	require.NoError(t, err)
	assert.Equal(t, MimePlain, doc.MimeType)
	assert.Equal(t, "Hello world", doc.Text)
}

func TestExtractSniffsMissingType(t *testing.T) {
	ex := NewDocumentExtractor(zap.NewNop())

	doc, err := ex.Extract("notes", "", []byte("just some text"))
	require.NoError(t, err)
	assert.Equal(t, MimePlain, doc.MimeType)

	_, err = ex.Extract("broken.pdf", "application/octet-stream", []byte("%PDF-1.4\nnot really a pdf"))
	assert.ErrorIs(t, err, ErrUnparseablePDF)
}

func TestExtractRejectsUnsupported(t *testing.T) {
	ex := NewDocumentExtractor(zap.NewNop())

	_, err := ex.Extract("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ex.Extract("doc.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("PK"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractBadPDF(t *testing.T) {
	ex := NewDocumentExtractor(zap.NewNop())
	_, err := ex.Extract("paper.pdf", "application/pdf", []byte("garbage"))
	assert.ErrorIs(t, err, ErrUnparseablePDF)
}

func TestExtractEmptyText(t *testing.T) {
	ex := NewDocumentExtractor(zap.NewNop())
	_, err := ex.Extract("empty.txt", "text/plain", []byte(" \n\x00"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
