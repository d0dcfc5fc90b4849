package factcheck

import "fmt"

// promptTemplate enumerates the judgment criteria the model must apply and
// pins the response to a strict three-field JSON object.
const promptTemplate = `You are an expert fact-checker. Analyze the following text and decide whether it is credible (Real) or non-credible (Fake).

Judge it on these criteria:
1. Factual accuracy of its claims
2. Sensationalism in tone or framing
3. Presence or absence of credibility markers (named sources, dates, specifics)
4. Logical consistency
5. Patterns typical of conspiracy content (vague "they", suppressed-truth framing, urgency to share)
6. Conflicts with established scientific consensus

Text to analyze:
"""
%s
"""

Respond with ONLY a JSON object, no other text:
{"prediction": "Real" or "Fake", "confidence": <number between 0 and 1>, "explanation": "<one or two sentences explaining the judgment>"}`

func buildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
