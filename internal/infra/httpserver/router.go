package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/application/analysis"
	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/middleware"
)

// maxUploadBytes caps multipart uploads at 10MB.
const maxUploadBytes = 10 << 20

type Router struct {
	svc *appanalysis.Service
}

func NewRouter(svc *appanalysis.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api/analyze", func(rt chi.Router) {
		rt.Post("/upload", r.wrap(r.handleUpload))
		rt.Get("/recent", r.wrap(r.handleRecent))
		rt.Delete("/clear", r.wrap(r.handleClear))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps pipeline error kinds onto HTTP statuses so callers can branch on
// status without parsing message strings.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrUnsupportedFileType):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrEmptyExtraction):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, domain.ErrPersistenceFailed):
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
	}
}

// POST /api/analyze/upload
// multipart form: "file" is the document, "useLLM" opts in to AI analysis
// when set to the string "true".
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)

	file, header, err := req.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: please upload a file", domain.ErrUnsupportedFileType)
	}
	defer file.Close()

	fileName := middleware.SanitizeFileName(header.Filename)
	mimeType := header.Header.Get("Content-Type")
	if err := middleware.ValidateUpload(fileName, mimeType); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnsupportedFileType, err)
	}

	tmpPath, err := saveTemp(file, fileName)
	if err != nil {
		return fmt.Errorf("stage upload: %w", err)
	}
	// The temp copy is removed on success and failure alike.
	defer os.Remove(tmpPath)

	record, err := r.svc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		FilePath: tmpPath,
		MimeType: mimeType,
		FileName: fileName,
		UseLLM:   req.FormValue("useLLM") == "true",
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	middleware.IncrementAnalyses()
	if n := len(record.Suggestions); n > 0 && record.Suggestions[n-1] == domain.SuggestAugmentationFailed {
		middleware.IncrementAugmentationsFailed()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    record,
	})
	return nil
}

// GET /api/analyze/recent?limit=10
func (r *Router) handleRecent(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	list, err := r.svc.Recent(req.Context(), limit)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}
	if list == nil {
		list = []*domain.Analysis{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    list,
	})
	return nil
}

// DELETE /api/analyze/clear
func (r *Router) handleClear(w http.ResponseWriter, req *http.Request) error {
	n, err := r.svc.Clear(req.Context())
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "All analyses cleared successfully.",
		"cleared": n,
	})
	return nil
}

// saveTemp stages the uploaded part on disk; extraction needs a real path
// because OCR shells out to tesseract.
func saveTemp(src io.Reader, fileName string) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(fileName))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
