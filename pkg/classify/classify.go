// Package classify places page content in a subject/topic/chapter taxonomy
// using weighted keyword matching over the page corpus.
package classify

import (
	"regexp"
	"strings"

	"github.com/gleanhq/glean/models"
)

// Corpus windows and key point budgets.
const (
	corpusParagraphs    = 20
	corpusListItems     = 30
	keyPointHeadings    = 3
	keyPointSubHeadings = 7
)

// Classifier scores page corpora against compiled keyword tables. It is
// immutable after construction and safe for concurrent use.
type Classifier struct {
	subjects compiledTable
	topics   compiledTable
	chapters compiledTable
}

type compiledTable struct {
	fallback string
	minScore int
	entries  []compiledCategory
}

type compiledCategory struct {
	name     string
	patterns []*regexp.Regexp
}

// New compiles a taxonomy into a classifier.
func New(tax Taxonomy) (*Classifier, error) {
	if err := tax.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		subjects: compileTable(tax.Subjects),
		topics:   compileTable(tax.Topics),
		chapters: compileTable(tax.Chapters),
	}, nil
}

// Default returns a classifier over the built-in taxonomy.
func Default() *Classifier {
	c, err := New(DefaultTaxonomy())
	if err != nil {
		panic(err)
	}
	return c
}

func compileTable(tab Table) compiledTable {
	compiled := compiledTable{
		fallback: tab.Fallback,
		minScore: tab.MinScore,
		entries:  make([]compiledCategory, 0, len(tab.Categories)),
	}
	for _, cat := range tab.Categories {
		entry := compiledCategory{name: cat.Name}
		for _, kw := range cat.Keywords {
			entry.patterns = append(entry.patterns, keywordPattern(kw))
		}
		compiled.entries = append(compiled.entries, entry)
	}
	return compiled
}

// keywordPattern compiles a keyword or phrase into a whole-word matcher.
// Interior whitespace in a phrase matches any whitespace run.
func keywordPattern(keyword string) *regexp.Regexp {
	parts := strings.Fields(strings.ToLower(keyword))
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`\b` + strings.Join(parts, `\s+`) + `\b`)
}

// Classify derives the taxonomy placement and key points for a page.
// It is a pure function of its input: same content, same result.
func (c *Classifier) Classify(content models.PageContent) (models.Classification, error) {
	if err := content.Validate(); err != nil {
		return models.Classification{}, err
	}

	corpus := buildCorpus(content)

	return models.Classification{
		Subject:   c.subjects.pick(corpus),
		Topic:     c.topics.pick(corpus),
		Chapter:   c.chapters.pick(corpus),
		KeyPoints: keyPoints(content),
	}, nil
}

// pick returns the highest-scoring category name, the earliest declared on
// ties, or the fallback when the best score is below the table minimum.
func (t *compiledTable) pick(corpus string) string {
	best := ""
	bestScore := 0

	for _, entry := range t.entries {
		score := 0
		for _, pattern := range entry.patterns {
			score += len(pattern.FindAllStringIndex(corpus, -1))
		}
		if score > bestScore {
			best = entry.name
			bestScore = score
		}
	}

	if best == "" || bestScore < t.minScore {
		return t.fallback
	}
	return best
}

// buildCorpus joins the classification-relevant text, lowercased: URL,
// title, all headings, then bounded windows of paragraphs and list items.
func buildCorpus(content models.PageContent) string {
	var sb strings.Builder
	write := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	write(content.URL)
	write(content.Title)
	for _, h := range content.Headings {
		write(h)
	}
	for _, h := range content.SubHeadings {
		write(h)
	}
	for i, p := range content.Paragraphs {
		if i == corpusParagraphs {
			break
		}
		write(p)
	}
	for i, item := range content.Lists {
		if i == corpusListItems {
			break
		}
		write(item)
	}

	return strings.ToLower(sb.String())
}

func keyPoints(content models.PageContent) []string {
	points := make([]string, 0, models.MaxKeyPoints)
	for i, h := range content.Headings {
		if i == keyPointHeadings {
			break
		}
		points = append(points, h)
	}
	for i, h := range content.SubHeadings {
		if i == keyPointSubHeadings {
			break
		}
		points = append(points, h)
	}
	if len(points) > models.MaxKeyPoints {
		points = points[:models.MaxKeyPoints]
	}
	return points
}
