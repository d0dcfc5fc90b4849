package model

// Label is the binary credibility class assigned to a text.
type Label int

const (
	// LabelCredible marks text that reads as real, factual reporting.
	LabelCredible Label = 0

	// LabelNonCredible marks text that reads as fabricated or sensationalized.
	LabelNonCredible Label = 1
)

// String returns the wire name of the label.
func (l Label) String() string {
	if l == LabelNonCredible {
		return "Fake"
	}
	return "Real"
}

// ParseLabel maps a wire name back to a Label. Anything that is not
// recognizably "Real" is coerced to LabelNonCredible: when a verdict is
// ambiguous we would rather flag it than trust it.
func ParseLabel(s string) Label {
	switch s {
	case "Real", "real", "REAL":
		return LabelCredible
	default:
		return LabelNonCredible
	}
}

// Verdict is the per-request classification result returned to callers.
type Verdict struct {
	Prediction  string  `json:"prediction"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Sample is one labeled training row.
type Sample struct {
	Text  string
	Label Label
}
