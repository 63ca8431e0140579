package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Artemis1096/Unthinkable-Solution-Assignment/internal/domain/analysis"
)

const validReply = `{
  "sentiment": "Positive",
  "clarityScore": 7,
  "suggestions": ["Add emoji", "Tag a friend"],
  "improvedCaption": "Better caption"
}`

func TestParseInsight(t *testing.T) {
	got, err := ParseInsight(validReply)
	require.NoError(t, err)

	assert.Equal(t, "Positive", got.Sentiment)
	assert.Equal(t, 7.0, got.ClarityScore)
	assert.Equal(t, []string{"Add emoji", "Tag a friend"}, got.Suggestions)
	assert.Equal(t, "Better caption", got.ImprovedCaption)
}

func TestParseInsight_StripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validReply + "\n```"
	got, err := ParseInsight(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Positive", got.Sentiment)
}

func TestParseInsight_MalformedJSON(t *testing.T) {
	_, err := ParseInsight("Sorry, I cannot help with that.")
	assert.ErrorIs(t, err, domain.ErrAugmentationFailed)
}

func TestParseInsight_MissingKeys(t *testing.T) {
	cases := []string{
		`{"clarityScore": 5, "suggestions": [], "improvedCaption": "x"}`,
		`{"sentiment": "Neutral", "suggestions": [], "improvedCaption": "x"}`,
		`{"sentiment": "Neutral", "clarityScore": 5, "improvedCaption": "x"}`,
		`{"sentiment": "Neutral", "clarityScore": 5, "suggestions": []}`,
	}
	for _, c := range cases {
		_, err := ParseInsight(c)
		assert.ErrorIs(t, err, domain.ErrAugmentationFailed, "reply %s", c)
	}
}

func TestParseInsight_OutOfRangeScoreIsKept(t *testing.T) {
	got, err := ParseInsight(`{"sentiment":"Odd","clarityScore":42,"suggestions":[],"improvedCaption":"x"}`)
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.ClarityScore)
}

func TestAugment_AgainstStubServer(t *testing.T) {
	content := "```json\n{\"sentiment\":\"Excited\",\"clarityScore\":9,\"suggestions\":[\"Go live\"],\"improvedCaption\":\"Wow\"}\n```"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "")
	got, err := c.Augment(context.Background(), "some extracted text")
	require.NoError(t, err)

	assert.Equal(t, "Excited", got.Sentiment)
	assert.Equal(t, 9.0, got.ClarityScore)
	assert.Equal(t, []string{"Go live"}, got.Suggestions)
}

func TestAugment_ServerErrorWrapsAugmentationFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "")
	_, err := c.Augment(context.Background(), "text")
	assert.ErrorIs(t, err, domain.ErrAugmentationFailed)
}
