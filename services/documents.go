package services

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type: only PDF and plain text are accepted")
	ErrUnparseablePDF  = errors.New("could not extract text from PDF")
	ErrEmptyDocument   = errors.New("document contains no text")
)

const (
	MimePDF   = "application/pdf"
	MimePlain = "text/plain"
)

// ExtractedDocument ist das Ergebnis der Textextraktion.
type ExtractedDocument struct {
	MimeType string
	Text     string
	Pages    int
}

// DocumentExtractor wandelt hochgeladene Dateien in speicherbaren Klartext um.
type DocumentExtractor struct {
	logger     *zap.Logger
	normalizer *TextNormalizer
}

func NewDocumentExtractor(logger *zap.Logger) *DocumentExtractor {
	return &DocumentExtractor{logger: logger, normalizer: NewTextNormalizer(logger, NormalizeOptions{})}
}

// DetectMIME nutzt den deklarierten Typ. Fehlt er oder ist er generisch, wird der Inhalt untersucht.
func DetectMIME(declared string, data []byte) string {
	mt := strings.ToLower(strings.TrimSpace(declared))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}
	if mt == "" || mt == "application/octet-stream" {
		detected := mimetype.Detect(data)
		mt, _, _ = strings.Cut(detected.String(), ";")
	}
	return mt
}

// Extract liefert den bereinigten Text einer PDF- oder Textdatei.
func (e *DocumentExtractor) Extract(filename, declaredMIME string, data []byte) (*ExtractedDocument, error) {
	mt := DetectMIME(declaredMIME, data)
	log := e.logger.With(zap.String("filename", filepath.Base(filename)), zap.String("mime", mt))

	switch mt {
	case MimePDF:
		pages, err := readPDFPages(data)
		if err != nil {
			log.Warn("PDF extraction failed", zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrUnparseablePDF, err)
		}
		text, stats := e.normalizer.NormalizePages(pages)
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: no text layer found", ErrUnparseablePDF)
		}
		return &ExtractedDocument{MimeType: MimePDF, Text: text, Pages: stats.NumPages}, nil
	case MimePlain:
		if !utf8.Valid(data) {
			log.Debug("Plain text upload contains invalid UTF-8, dropping invalid bytes")
		}
		text := strings.TrimSpace(SanitizeText(string(data)))
		if text == "" {
			return nil, ErrEmptyDocument
		}
		return &ExtractedDocument{MimeType: MimePlain, Text: text}, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// readPDFPages liest den Text aller Seiten. Die Bibliothek kann bei defekten Dateien paniken.
func readPDFPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
