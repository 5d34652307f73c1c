// Package extract turns raw page HTML into structured PageContent. The
// readability pass isolates the main article, then the distilled markup is
// walked for headings, paragraphs and list items.
package extract

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/gleanhq/glean/models"
)

// MinParagraphChars filters out stub paragraphs like image credits.
const MinParagraphChars = 20

type Extractor struct {
	detector *languageDetector
}

func New() *Extractor {
	return &Extractor{detector: newLanguageDetector()}
}

// FromHTML extracts structured content from a page body. The URL is kept
// on the result and used to resolve relative links during readability.
func (e *Extractor) FromHTML(rawURL string, html []byte) (models.PageContent, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return models.PageContent{}, fmt.Errorf("failed to parse url: %w", err)
	}

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(string(html)), parsedURL)
	if err != nil {
		return models.PageContent{}, fmt.Errorf("failed to distill article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return models.PageContent{}, fmt.Errorf("failed to parse article content: %w", err)
	}

	content := models.PageContent{
		URL:       rawURL,
		Timestamp: time.Now().UTC(),
	}

	doc.Find("h1,h2,h3,h4,h5,h6,p,li").Each(func(i int, s *goquery.Selection) {
		text := normalizeText(s.Text())
		if text == "" {
			return
		}

		switch goquery.NodeName(s) {
		case "h1", "h2", "h3":
			content.Headings = append(content.Headings, text)
		case "h4", "h5", "h6":
			content.SubHeadings = append(content.SubHeadings, text)
		case "p":
			if len(text) >= MinParagraphChars {
				content.Paragraphs = append(content.Paragraphs, text)
			}
		case "li":
			content.Lists = append(content.Lists, text)
		}
	})

	content.Title = pageTitle(article.Title, content.Headings, parsedURL)
	content.Clamp()
	e.detector.annotate(&content)

	return content, nil
}

// pageTitle falls back from the distilled title to the first heading to
// the host, so stored entries are never nameless.
func pageTitle(title string, headings []string, pageURL *url.URL) string {
	if t := normalizeText(title); t != "" {
		return t
	}
	if len(headings) > 0 {
		return headings[0]
	}
	return pageURL.Host
}

// normalizeText trims each line and joins them with single spaces.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
