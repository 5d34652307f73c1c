// Package summarize builds extractive summaries of page content: the
// highest-signal sentences by keyword frequency and position, plus any
// definition and example sentences the page offers.
package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/analytics"
)

// Position bonus: sentences from the first positionWindow paragraphs earn
// positionBase minus the paragraph index.
const (
	positionWindow = 3
	positionBase   = 5
	maxFreqCredit  = 5 // per-word frequency credit ceiling
)

// prefixLen is the uniqueness window: two sentences sharing this many
// leading characters (case-insensitive) count as the same point.
const prefixLen = 50

type scoredSentence struct {
	sentence
	score int
}

// Summarize produces the extractive summary of a page. It is a total,
// pure function: sparse or empty content yields an empty summary, never
// an error.
func Summarize(content models.PageContent) models.Summary {
	sents := candidates(content)

	freq := wordFrequencies(sents)
	headings := headingKeywords(content)

	scored := make([]scoredSentence, 0, len(sents))
	for _, s := range sents {
		if utf8.RuneCountInString(s.text) < minSentenceLen {
			continue
		}
		scored = append(scored, scoredSentence{sentence: s, score: scoreSentence(s, freq, headings)})
	}

	return models.Summary{
		SummaryPoints: selectTop(scored),
		Definitions:   collectMatching(sents, definitionPatterns, models.MaxDefinitions),
		Examples:      collectMatching(sents, examplePatterns, models.MaxExamples),
	}
}

// wordFrequencies counts content tokens across every summary-length
// candidate sentence.
func wordFrequencies(sents []sentence) map[string]int {
	freq := make(map[string]int)
	for _, s := range sents {
		if utf8.RuneCountInString(s.text) < minSentenceLen {
			continue
		}
		for _, token := range analytics.Tokens(s.text) {
			freq[token]++
		}
	}
	return freq
}

// headingKeywords tokenizes headings and subheadings into the proximity
// signal set.
func headingKeywords(content models.PageContent) map[string]struct{} {
	set := make(map[string]struct{})
	joined := strings.Join(content.Headings, " ") + " " + strings.Join(content.SubHeadings, " ")
	for _, token := range analytics.Tokens(joined) {
		set[token] = struct{}{}
	}
	return set
}

func scoreSentence(s sentence, freq map[string]int, headings map[string]struct{}) int {
	score := 0

	for _, token := range analytics.Tokens(s.text) {
		if f := freq[token]; f > 1 {
			score += min(f, maxFreqCredit)
		}
		if _, ok := headings[token]; ok {
			score += 3
		}
	}

	if s.paraIndex >= 0 && s.paraIndex < positionWindow {
		score += positionBase - s.paraIndex
	}

	switch n := utf8.RuneCountInString(s.text); {
	case n >= 60 && n <= 200:
		score += 2
	case n > 200 && n <= 300:
		score += 1
	}

	if importancePattern.MatchString(s.text) {
		score += 2
	}
	if discoursePattern.MatchString(s.text) {
		score += 1
	}

	return score
}

// selectTop ranks candidates score-descending (document order on ties) and
// keeps the best prefix-unique sentences up to the summary budget.
func selectTop(scored []scoredSentence) []string {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var points []string
	seen := make(map[string]struct{})
	for _, s := range scored {
		if len(points) == models.MaxSummaryPoints {
			break
		}
		key := prefixKey(s.text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		points = append(points, s.text)
	}

	return points
}

// collectMatching scans sentences in document order and keeps prefix-unique
// ones matching any trigger pattern, within the extract length gates,
// stopping at limit.
func collectMatching(sents []sentence, patterns []*regexp.Regexp, limit int) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, s := range sents {
		if len(out) == limit {
			break
		}
		n := utf8.RuneCountInString(s.text)
		if n < minSentenceLen || n > maxExtractLen {
			continue
		}
		if !matchesAny(s.text, patterns) {
			continue
		}
		key := prefixKey(s.text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s.text)
	}

	return out
}

func prefixKey(s string) string {
	lower := strings.ToLower(s)
	runes := []rune(lower)
	if len(runes) > prefixLen {
		return string(runes[:prefixLen])
	}
	return lower
}
