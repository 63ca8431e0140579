package analysis

import "strings"

// MinPostLength is the character count below which a post is considered
// too short to engage readers.
const MinPostLength = 50

// Fixed suggestion texts. Tests and the pipeline reference these by name;
// they are part of the API contract, do not inline them.
const (
	SuggestLengthen     = "Make the post longer with more context."
	SuggestHashtags     = "Add 1-3 relevant hashtags."
	SuggestQuestion     = "Add a question to invite engagement."
	SuggestCallToAction = "Add a call-to-action (e.g., 'Follow for more', 'Share this')."

	// SuggestAugmentationFailed is appended when an opted-in model call
	// fails; it is the only trace of that failure a caller sees.
	SuggestAugmentationFailed = "AI Analysis failed. Showing basic suggestions only."
)

// CallToActionWords is the fixed CTA vocabulary, matched case-insensitively.
var CallToActionWords = []string{"follow", "share", "comment", "like", "save", "link in bio"}

// Suggest derives engagement suggestions from extracted text.
// Pure and deterministic: the four checks run independently, each appends
// at most one suggestion, and the order is fixed
// (length, hashtag, question, call-to-action).
func Suggest(text string) []string {
	suggestions := []string{}

	if len(text) < MinPostLength {
		suggestions = append(suggestions, SuggestLengthen)
	}

	if !strings.Contains(text, "#") {
		suggestions = append(suggestions, SuggestHashtags)
	}

	if !strings.Contains(text, "?") {
		suggestions = append(suggestions, SuggestQuestion)
	}

	lower := strings.ToLower(text)
	hasCTA := false
	for _, word := range CallToActionWords {
		if strings.Contains(lower, word) {
			hasCTA = true
			break
		}
	}
	if !hasCTA {
		suggestions = append(suggestions, SuggestCallToAction)
	}

	return suggestions
}
