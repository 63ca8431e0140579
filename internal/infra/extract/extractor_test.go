package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
)

type stubRunner struct {
	stdout []byte
	err    error
}

func (s stubRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	return s.stdout, nil, s.err
}

func newStubExtractor(stdout string, err error) *Extractor {
	e := New("", nil)
	e.ocr.runner = stubRunner{stdout: []byte(stdout), err: err}
	return e
}

func TestExtract_RejectsUnknownMime(t *testing.T) {
	e := New("", nil)

	for _, mime := range []string{"text/plain", "application/zip", ""} {
		_, err := e.Extract(context.Background(), "whatever.bin", mime)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType, "mime %q", mime)
	}
}

func TestExtract_ImageTrimsOCROutput(t *testing.T) {
	e := newStubExtractor("  hello from an image  \n\n", nil)

	got, err := e.Extract(context.Background(), "p.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "hello from an image", got.Text)
	assert.Equal(t, domain.FileKindImage, got.Kind)
}

func TestExtract_WhitespaceOnlyIsEmptyExtraction(t *testing.T) {
	e := newStubExtractor(" \n\t \n", nil)

	_, err := e.Extract(context.Background(), "blank.png", "image/png")
	assert.ErrorIs(t, err, domain.ErrEmptyExtraction)
}

func TestExtract_OCRFailurePropagates(t *testing.T) {
	e := newStubExtractor("", errors.New("exit status 1"))

	_, err := e.Extract(context.Background(), "p.jpg", "image/jpeg")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedFileType)
	assert.NotErrorIs(t, err, domain.ErrEmptyExtraction)
}

func TestExtract_CorruptPDFIsUnsupported(t *testing.T) {
	e := New("", nil)

	// Path does not contain a PDF; the parser must fail, not hang.
	_, err := e.Extract(context.Background(), "testdata/missing.pdf", "application/pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}
