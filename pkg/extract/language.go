package extract

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/gleanhq/glean/models"
)

// languageSampleParagraphs bounds how much text the detector sees.
const languageSampleParagraphs = 3

var detectionLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
}

type languageDetector struct {
	detector lingua.LanguageDetector
}

func newLanguageDetector() *languageDetector {
	return &languageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectionLanguages...).
			Build(),
	}
}

// annotate tags content with its detected language. Detection is best
// effort; content without enough signal is left unannotated.
func (d *languageDetector) annotate(content *models.PageContent) {
	sample := content.Title
	limit := len(content.Paragraphs)
	if limit > languageSampleParagraphs {
		limit = languageSampleParagraphs
	}
	if limit > 0 {
		sample += " " + strings.Join(content.Paragraphs[:limit], " ")
	}
	if strings.TrimSpace(sample) == "" {
		return
	}

	values := d.detector.ComputeLanguageConfidenceValues(sample)
	if len(values) == 0 {
		return
	}
	best := values[0]
	content.Language = strings.ToLower(best.Language().IsoCode639_1().String())
	content.LanguageConfidence = best.Value()
}
