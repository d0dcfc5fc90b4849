package factcheck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/LegendarySumit/TruthShield/internal/model"
)

var codeFencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// minConfidence and maxConfidence bound what the remote path may claim; the
// model's self-reported number is advisory, never taken at face value.
const (
	minConfidence     = 0.5
	maxConfidence     = 0.99
	defaultConfidence = 0.75
)

type rawVerdict struct {
	Prediction  string   `json:"prediction"`
	Confidence  *float64 `json:"confidence"`
	Explanation string   `json:"explanation"`
}

// parseVerdict decodes a model response into a Verdict with strict
// defaulting rules: an unrecognized prediction is coerced to "Fake" (bias
// toward flagging unverified content), a missing confidence takes a neutral
// default, and confidence is clamped to [0.5, 0.99].
func parseVerdict(response string) (*model.Verdict, error) {
	body := extractJSON(response)
	if body == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var raw rawVerdict
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("decode verdict: %w", err)
	}
	if strings.TrimSpace(raw.Prediction) == "" {
		return nil, fmt.Errorf("verdict missing prediction field")
	}

	confidence := defaultConfidence
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	explanation := strings.TrimSpace(raw.Explanation)
	if explanation == "" {
		explanation = "AI fact-check returned no explanation."
	}

	return &model.Verdict{
		Prediction:  model.ParseLabel(strings.TrimSpace(raw.Prediction)).String(),
		Confidence:  confidence,
		Explanation: explanation,
	}, nil
}

// extractJSON strips markdown code fences and isolates the outermost JSON
// object in the response.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```") {
		if m := codeFencePattern.FindStringSubmatch(response); len(m) > 1 {
			response = m[1]
		}
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return ""
	}
	return response[start : end+1]
}
