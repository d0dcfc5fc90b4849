// Package textnorm is the single shared text normalizer used by both the
// training pipeline and the inference service. The trained vectorizer's
// vocabulary is built over this package's output, including the literal
// FEAT_* marker tokens, so the thresholds and token strings here are part of
// the persisted model contract: change any of them and every previously
// trained artifact pair is invalid. Version tracks that contract.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Version identifies the normalization contract. It is stored alongside
// trained artifacts and checked at load time.
const Version = "v3"

var (
	urlPattern      = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	mentionPattern  = regexp.MustCompile(`@\w+`)
	hashtagPattern  = regexp.MustCompile(`#\w+`)
	punctPattern    = regexp.MustCompile(`[^\w\s]`)
	capsRunsPattern = regexp.MustCompile(`\b[A-Z]{3,}\b.*\b[A-Z]{3,}\b`)
)

var urgencyWords = []string{
	"breaking", "urgent", "alert", "warning", "exposed",
	"leaked", "banned", "shocking", "bombshell",
}

var vagueSourcePhrases = []string{
	"they don", "they won", "they are hiding", "they don't want",
	"doctors hate", "doctors won", "wake up", "open your eyes", "sheeple",
}

// signals are stylistic measurements taken on the original-case text before
// any transformation.
type signals struct {
	exclamations int
	questions    int
	capsWords    int
	capsRatio    float64
	capsPhrases  bool
}

func measureSignals(text string) signals {
	s := signals{
		exclamations: strings.Count(text, "!"),
		questions:    strings.Count(text, "?"),
		capsPhrases:  capsRunsPattern.MatchString(text),
	}

	for _, w := range strings.Fields(text) {
		if utf8.RuneCountInString(w) > 2 && isUpperWord(w) {
			s.capsWords++
		}
	}

	total := utf8.RuneCountInString(text)
	if total < 1 {
		total = 1
	}
	upper := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	s.capsRatio = float64(upper) / float64(total)

	return s
}

// isUpperWord reports whether the word contains at least one letter and no
// lowercase letters, e.g. "NOW!!!" qualifies but "0.25%" does not.
func isUpperWord(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// Normalize maps raw input text to a lowercased, masked, punctuation-free
// token string with zero or more FEAT_* stylistic marker tokens appended.
// It is pure and deterministic; empty or whitespace-only input yields "".
func Normalize(raw string) string {
	sig := measureSignals(raw)

	text := strings.ToLower(raw)
	text = urlPattern.ReplaceAllString(text, " URL ")
	text = mentionPattern.ReplaceAllString(text, " MENTION ")
	text = hashtagPattern.ReplaceAllString(text, " HASHTAG ")
	text = punctPattern.ReplaceAllString(text, " ")
	text = strings.Join(strings.Fields(text), " ")

	var feats []string
	if sig.exclamations >= 2 {
		feats = append(feats, "FEAT_MANY_EXCLAMATIONS")
	}
	if sig.exclamations >= 5 {
		feats = append(feats, "FEAT_EXTREME_EXCLAMATIONS")
	}
	if sig.capsRatio > 0.15 {
		feats = append(feats, "FEAT_HIGH_CAPS")
	}
	if sig.capsRatio > 0.30 {
		feats = append(feats, "FEAT_EXTREME_CAPS")
	}
	if sig.capsWords >= 3 {
		feats = append(feats, "FEAT_MANY_CAPS_WORDS")
	}
	if sig.capsPhrases {
		feats = append(feats, "FEAT_CAPS_PHRASES")
	}
	if sig.questions >= 2 {
		feats = append(feats, "FEAT_MANY_QUESTIONS")
	}
	if sig.exclamations+sig.questions >= 4 {
		feats = append(feats, "FEAT_HEAVY_PUNCTUATION")
	}

	urgency := 0
	for _, w := range urgencyWords {
		if strings.Contains(text, w) {
			urgency++
		}
	}
	if urgency >= 2 {
		feats = append(feats, "FEAT_HIGH_URGENCY")
	}

	for _, phrase := range vagueSourcePhrases {
		if strings.Contains(text, phrase) {
			feats = append(feats, "FEAT_VAGUE_SOURCE")
			break
		}
	}

	if len(feats) > 0 {
		if text == "" {
			return strings.Join(feats, " ")
		}
		text += " " + strings.Join(feats, " ")
	}
	return text
}
