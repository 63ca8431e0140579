package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/application"
	appanalysis "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/application/analysis"
	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
)

type memRepo struct {
	records []*domain.Analysis
}

func (r *memRepo) Save(_ context.Context, a *domain.Analysis) error {
	r.records = append(r.records, a)
	return nil
}

func (r *memRepo) Latest(_ context.Context, limit int) ([]*domain.Analysis, error) {
	if limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]*domain.Analysis, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *r.records[i]
		copied.Text = ""
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.records))
	r.records = nil
	return n, nil
}

type staticExtractor struct {
	text string
	err  error
}

func (e staticExtractor) Extract(_ context.Context, _, mimeType string) (domain.Extraction, error) {
	if e.err != nil {
		return domain.Extraction{}, e.err
	}
	kind := domain.FileKindImage
	if mimeType == "application/pdf" {
		kind = domain.FileKindPDF
	}
	return domain.Extraction{Text: e.text, Kind: kind}, nil
}

type failingAugmenter struct{}

func (failingAugmenter) Augment(_ context.Context, _ string) (*domain.Insight, error) {
	return nil, domain.ErrAugmentationFailed
}

func newTestRouter(repo *memRepo, ex domain.Extractor, aug domain.Augmenter) http.Handler {
	svc := &appanalysis.Service{
		Repo:      repo,
		Extractor: ex,
		Augmenter: aug,
		Clock:     application.SystemClock{},
	}
	return NewRouter(svc, nil)
}

func multipartUpload(t *testing.T, fileName, mimeType, content, useLLM string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	if useLLM != "" {
		require.NoError(t, mw.WriteField("useLLM", useLLM))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUpload_Success(t *testing.T) {
	repo := &memRepo{}
	router := newTestRouter(repo, staticExtractor{text: "A short caption text"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "post.png", "image/png", "fake image bytes", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "post.png", data["fileName"])
	assert.Equal(t, "image", data["fileType"])
	assert.Len(t, data["suggestions"], 4)
	_, hasLLM := data["llm"]
	assert.False(t, hasLLM)
	assert.Len(t, repo.records, 1)
}

func TestUpload_AugmentationFailureStillSucceeds(t *testing.T) {
	repo := &memRepo{}
	router := newTestRouter(repo, staticExtractor{text: "A short caption text"}, failingAugmenter{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "post.png", "image/png", "fake", "true"))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)

	suggestions := data["suggestions"].([]any)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, domain.SuggestAugmentationFailed, suggestions[len(suggestions)-1])
	_, hasLLM := data["llm"]
	assert.False(t, hasLLM)
}

func TestUpload_UnsupportedType(t *testing.T) {
	repo := &memRepo{}
	router := newTestRouter(repo, staticExtractor{text: "ignored"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "notes.txt", "text/plain", "plain text", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
	// Rejected before extraction; nothing persisted.
	assert.Empty(t, repo.records)
}

func TestUpload_EmptyExtraction(t *testing.T) {
	repo := &memRepo{}
	router := newTestRouter(repo, staticExtractor{err: domain.ErrEmptyExtraction}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartUpload(t, "blank.pdf", "application/pdf", "%PDF-1.4", ""))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, repo.records)
}

func TestUpload_MissingFilePart(t *testing.T) {
	router := newTestRouter(&memRepo{}, staticExtractor{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/upload", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecent_OmitsTextAndOrdersNewestFirst(t *testing.T) {
	now := time.Now()
	repo := &memRepo{records: []*domain.Analysis{
		{ID: "old", FileName: "a.pdf", Text: "secret text", CreatedAt: now.Add(-time.Hour)},
		{ID: "new", FileName: "b.png", Text: "secret text", CreatedAt: now},
	}}
	router := newTestRouter(repo, staticExtractor{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze/recent?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 2)

	first := data[0].(map[string]any)
	assert.Equal(t, "new", first["id"])
	_, hasText := first["text"]
	assert.False(t, hasText)
}

func TestClear(t *testing.T) {
	repo := &memRepo{records: []*domain.Analysis{{ID: "x"}, {ID: "y"}}}
	router := newTestRouter(repo, staticExtractor{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/analyze/clear", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["cleared"])
	assert.Empty(t, repo.records)
}
