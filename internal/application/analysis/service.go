package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/application"
	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
)

// Service implements use-cases untuk Analysis.
// Each call is independent; the service holds no per-request state and is
// safe for concurrent use.
type Service struct {
	Repo      domain.Repository
	Extractor domain.Extractor
	Augmenter domain.Augmenter    // optional; nil when no model is configured
	Archive   domain.ArchiveStore // optional; nil disables upload archival
	Clock     application.Clock
	Logger    *slog.Logger
}

//
// ==== USE CASES ====
//

// Command untuk analyze upload
type AnalyzeCommand struct {
	FilePath string // temp copy of the upload; owned by the caller
	MimeType string
	FileName string
	UseLLM   bool
}

// Analyze runs extraction, heuristic scoring, optional model augmentation,
// and persists the result. Extraction and persistence failures abort the run
// with their error kind; an augmentation failure is logged and downgraded to
// the fixed sentinel suggestion so the record still lands.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Analysis, error) {
	extraction, err := s.Extractor.Extract(ctx, cmd.FilePath, cmd.MimeType)
	if err != nil {
		return nil, err
	}

	suggestions := domain.Suggest(extraction.Text)

	var llm *domain.LLMFields
	if cmd.UseLLM {
		insight, aerr := s.augment(ctx, extraction.Text)
		if aerr != nil {
			s.logger().Warn("augmentation failed, proceeding with basic suggestions",
				"file", cmd.FileName, "error", aerr)
			suggestions = append(suggestions, domain.SuggestAugmentationFailed)
		} else {
			// Heuristic suggestions always precede model suggestions.
			suggestions = append(suggestions, insight.Suggestions...)
			llm = &domain.LLMFields{
				Sentiment:       insight.Sentiment,
				ClarityScore:    insight.ClarityScore,
				ImprovedCaption: insight.ImprovedCaption,
			}
		}
	}

	record := &domain.Analysis{
		ID:          domain.AnalysisID(uuid.New().String()),
		FileName:    cmd.FileName,
		FileType:    extraction.Kind,
		Text:        extraction.Text,
		Suggestions: suggestions,
		LLM:         llm,
		CreatedAt:   s.Clock.Now(),
	}

	if err := s.Repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	if s.Archive != nil {
		key := fmt.Sprintf("%s/%s/%s", record.FileType, record.ID, record.FileName)
		url, aerr := s.Archive.Upload(ctx, cmd.FilePath, key)
		if aerr != nil {
			// Archival is best-effort; the record is already persisted.
			s.logger().Warn("upload archival failed", "id", record.ID, "error", aerr)
		} else {
			s.logger().Info("upload archived", "id", record.ID, "url", url)
		}
	}

	return record, nil
}

// Recent ambil N analysis terakhir, text dikosongkan oleh repo
func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, limit)
}

// Clear hapus semua analysis, balikin jumlah yang dihapus
func (s *Service) Clear(ctx context.Context) (int64, error) {
	return s.Repo.DeleteAll(ctx)
}

func (s *Service) augment(ctx context.Context, text string) (*domain.Insight, error) {
	if s.Augmenter == nil {
		return nil, fmt.Errorf("%w: no model configured", domain.ErrAugmentationFailed)
	}
	return s.Augmenter.Augment(ctx, text)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
