package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
)

// Connect opens a Postgres pool with the same limits as the MySQL side.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO analyses
  (id, file_name, file_type, text, suggestions,
   llm_sentiment, llm_clarity_score, llm_improved_caption, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);
`
	suggestions, err := json.Marshal(a.Suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}

	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var sentiment, caption sql.NullString
	var clarity sql.NullFloat64
	if a.LLM != nil {
		sentiment = sql.NullString{String: a.LLM.Sentiment, Valid: true}
		clarity = sql.NullFloat64{Float64: a.LLM.ClarityScore, Valid: true}
		caption = sql.NullString{String: a.LLM.ImprovedCaption, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, q,
		a.ID, a.FileName, a.FileType, a.Text, suggestions,
		sentiment, clarity, caption, createdAt,
	)
	return err
}

func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, file_name, file_type, suggestions,
       llm_sentiment, llm_clarity_score, llm_improved_caption, created_at
FROM analyses
ORDER BY created_at DESC, id DESC LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
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
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *AnalysisRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses;`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
