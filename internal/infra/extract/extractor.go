// Package extract converts uploaded files into plain text.
//
// Two kinds are supported: application/pdf (parsed in-process with pdfcpu)
// and image/* (OCR via the tesseract binary). There is no OCR fallback for
// scanned PDFs; a PDF without a text layer surfaces as an empty extraction.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
)

type Extractor struct {
	ocr    *Tesseract
	logger *slog.Logger
}

// New creates an Extractor. tesseractBin may be empty to use $PATH lookup.
func New(tesseractBin string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		ocr:    NewTesseract(tesseractBin, logger),
		logger: logger,
	}
}

// Extract reads the file at path and returns its trimmed text content.
// The source file is only read, never modified or removed.
func (e *Extractor) Extract(ctx context.Context, path, mimeType string) (domain.Extraction, error) {
	var (
		text string
		kind domain.FileKind
		err  error
	)

	switch {
	case mimeType == "application/pdf":
		kind = domain.FileKindPDF
		text, err = extractPDFText(path)
		if err != nil {
			// The stream was not valid for its declared type.
			return domain.Extraction{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedFileType, err)
		}
	case strings.HasPrefix(mimeType, "image/"):
		kind = domain.FileKindImage
		text, err = e.ocr.Recognize(ctx, path)
		if err != nil {
			return domain.Extraction{}, fmt.Errorf("ocr %s: %w", filepath.Base(path), err)
		}
	default:
		return domain.Extraction{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, mimeType)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Extraction{}, fmt.Errorf("%w from %s", domain.ErrEmptyExtraction, filepath.Base(path))
	}

	e.logger.Debug("extraction done", "path", path, "kind", kind, "chars", len(text))
	return domain.Extraction{Text: text, Kind: kind}, nil
}
