package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save insert satu Analysis record. Records are immutable; there is no upsert.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO analyses
  (id, file_name, file_type, text, suggestions,
   llm_sentiment, llm_clarity_score, llm_improved_caption, created_at)
VALUES (?,?,?,?,?,?,?,?,?);
`
	suggestions, err := json.Marshal(a.Suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	sentiment, clarity, caption := llmColumns(a.LLM)
	_, err = r.db.ExecContext(ctx, q,
		a.ID, a.FileName, a.FileType, a.Text, suggestions,
		sentiment, clarity, caption, createdAt,
	)
	return err
}

// Latest returns the most recent analyses, newest first. The text column is
// not selected so list payloads stay small.
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, file_name, file_type, suggestions,
       llm_sentiment, llm_clarity_score, llm_improved_caption, created_at
FROM analyses
ORDER BY created_at DESC, id DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DeleteAll clears every record and reports how many were removed.
func (r *AnalysisRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses;`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanAnalysis(rows *sql.Rows) (*domain.Analysis, error) {
	var (
		a           domain.Analysis
		suggestions []byte
		sentiment   sql.NullString
		clarity     sql.NullFloat64
		caption     sql.NullString
	)
	if err := rows.Scan(
		&a.ID, &a.FileName, &a.FileType, &suggestions,
		&sentiment, &clarity, &caption, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(suggestions, &a.Suggestions); err != nil {
		return nil, fmt.Errorf("decode suggestions for %s: %w", a.ID, err)
	}
	if sentiment.Valid {
		a.LLM = &domain.LLMFields{
			Sentiment:       sentiment.String,
			ClarityScore:    clarity.Float64,
			ImprovedCaption: caption.String,
		}
	}
	return &a, nil
}

func llmColumns(llm *domain.LLMFields) (sql.NullString, sql.NullFloat64, sql.NullString) {
	if llm == nil {
		return sql.NullString{}, sql.NullFloat64{}, sql.NullString{}
	}
	return sql.NullString{String: llm.Sentiment, Valid: true},
		sql.NullFloat64{Float64: llm.ClarityScore, Valid: true},
		sql.NullString{String: llm.ImprovedCaption, Valid: true}
}
