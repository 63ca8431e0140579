package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Latest(ctx context.Context, limit int) ([]*Analysis, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Extractor port (interface untuk ekstraksi teks dari file)
type Extractor interface {
	Extract(ctx context.Context, path, mimeType string) (Extraction, error)
}

// Augmenter port (interface untuk analisis via language model)
type Augmenter interface {
	Augment(ctx context.Context, text string) (*Insight, error)
}

// ArchiveStore port (interface untuk penyimpanan arsip file upload)
type ArchiveStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}
