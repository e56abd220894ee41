// Package langdetect checks that transformed text reads as the language of
// the layout it claims to be typed on.
package langdetect

import (
	"github.com/pemistahl/lingua-go"

	"layfix/layout"
)

// Detector guards replacements: if a transform's output does not look like
// the target layout's language, the selection was probably real text, not a
// wrong-layout typo.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector restricted to the two supported languages.
func New() *Detector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Russian).
		Build()
	return &Detector{detector: d}
}

// Matches reports whether text plausibly belongs to the language typed on
// target. Text too short or ambiguous to classify gets the benefit of the
// doubt.
func (d *Detector) Matches(text string, target layout.Layout) bool {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return true
	}
	switch target {
	case layout.RU:
		return lang == lingua.Russian
	case layout.EN:
		return lang == lingua.English
	default:
		return true
	}
}
