package analysis

import (
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// FileKind enum
type FileKind string

const (
	FileKindPDF   FileKind = "pdf"
	FileKindImage FileKind = "image"
)

// Extraction is the raw output of text extraction, before any scoring.
type Extraction struct {
	Text string
	Kind FileKind
}

// Insight is what the language model returns for one piece of content.
// ClarityScore is stored as reported; the 1-10 range is not enforced.
type Insight struct {
	Sentiment       string   `json:"sentiment"`
	ClarityScore    float64  `json:"clarityScore"`
	Suggestions     []string `json:"suggestions"`
	ImprovedCaption string   `json:"improvedCaption"`
}

// LLMFields are the model-derived attributes folded into a stored record.
type LLMFields struct {
	Sentiment       string  `json:"sentiment"`
	ClarityScore    float64 `json:"clarityScore"`
	ImprovedCaption string  `json:"improvedCaption"`
}

// Aggregate Root: Analysis
// Created once per successful pipeline run, never updated afterwards.
// Text is omitted from list responses to keep payloads small.
type Analysis struct {
	ID          AnalysisID `json:"id"`
	FileName    string     `json:"fileName"`
	FileType    FileKind   `json:"fileType"`
	Text        string     `json:"text,omitempty"`
	Suggestions []string   `json:"suggestions"`
	LLM         *LLMFields `json:"llm,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
