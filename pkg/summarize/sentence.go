package summarize

import (
	"strings"
	"unicode"

	"github.com/gleanhq/glean/models"
)

// Length gates, in runes, over normalized sentences.
const (
	minSentenceLen = 30  // below this a sentence is noise
	maxExtractLen  = 300 // definitions/examples upper bound
)

// sentence is one normalized candidate with its provenance. paraIndex is
// the index within Paragraphs, or -1 for list items.
type sentence struct {
	text      string
	paraIndex int
}

// splitSentences segments text on terminal punctuation followed by
// whitespace; end of input also terminates a sentence.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		cur.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(cur.String()); s != "" {
			sentences = append(sentences, s)
		}
		cur.Reset()
	}

	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// normalizeSentence collapses whitespace and strips non-linguistic symbols,
// keeping letters, digits and basic punctuation.
func normalizeSentence(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			sb.WriteRune(r)
		case strings.ContainsRune(`.,;:!?'"()-`, r):
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// candidates segments the scoring corpus (paragraphs then lists) into
// normalized sentences in document order.
func candidates(content models.PageContent) []sentence {
	var out []sentence

	for i, p := range content.Paragraphs {
		for _, raw := range splitSentences(p) {
			if text := normalizeSentence(raw); text != "" {
				out = append(out, sentence{text: text, paraIndex: i})
			}
		}
	}
	for _, item := range content.Lists {
		for _, raw := range splitSentences(item) {
			if text := normalizeSentence(raw); text != "" {
				out = append(out, sentence{text: text, paraIndex: -1})
			}
		}
	}

	return out
}
