package prompt

import "fmt"

// Engagement builds the single-shot analysis prompt. The reply contract is a
// bare JSON object with sentiment, clarityScore, suggestions and
// improvedCaption; models still wrap it in code fences often enough that the
// caller must strip them.
func Engagement(text string) string {
	return fmt.Sprintf(`Analyze this social media content and provide engagement suggestions.

Content: %q

Provide a JSON response with:
- sentiment: (string) e.g., "Positive", "Neutral", "Negative", "Excited"
- clarityScore: (number) 1-10 rating for clarity
- suggestions: (array of strings) 3-5 specific actionable tips for better engagement
- improvedCaption: (string) a rewritten version optimized for social media engagement

Return ONLY the JSON object, no markdown formatting.`, text)
}
