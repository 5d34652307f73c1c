package models

import (
	"errors"
	"strings"
	"time"
)

// Caps applied by extractors before content enters the engine.
const (
	MaxParagraphs = 50
	MaxLists      = 100
)

// ErrMissingURL reports page content that arrived without its source URL.
var ErrMissingURL = errors.New("page content has no url")

// PageContent is the structured text of a single captured page. It is the
// sole input to classification and summarization.
type PageContent struct {
	URL         string    `json:"url" yaml:"url"`
	Title       string    `json:"title" yaml:"title"`
	Headings    []string  `json:"headings" yaml:"headings"`         // h1-h3
	SubHeadings []string  `json:"sub_headings" yaml:"sub_headings"` // h4-h6
	Paragraphs  []string  `json:"paragraphs" yaml:"paragraphs"`     // capped at MaxParagraphs
	Lists       []string  `json:"lists" yaml:"lists"`               // flattened list items, capped at MaxLists
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`       // capture instant

	// Language enrichment (from pkg/extract)
	Language           string  `json:"language,omitempty" yaml:"language,omitempty"` // ISO-639-1 if possible (e.g. "en")
	LanguageConfidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
}

// Validate checks the invariants enforced at the engine boundary.
func (p *PageContent) Validate() error {
	if strings.TrimSpace(p.URL) == "" {
		return ErrMissingURL
	}
	return nil
}

// Clamp enforces the paragraph and list caps in place.
func (p *PageContent) Clamp() {
	if len(p.Paragraphs) > MaxParagraphs {
		p.Paragraphs = p.Paragraphs[:MaxParagraphs]
	}
	if len(p.Lists) > MaxLists {
		p.Lists = p.Lists[:MaxLists]
	}
}

// ToPlainText concatenates all readable text, one element per line.
func (p *PageContent) ToPlainText() string {
	var sb strings.Builder

	writeAll := func(lines []string) {
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	if p.Title != "" {
		sb.WriteString(p.Title)
		sb.WriteString("\n")
	}
	writeAll(p.Headings)
	writeAll(p.SubHeadings)
	writeAll(p.Paragraphs)
	writeAll(p.Lists)

	return sb.String()
}
