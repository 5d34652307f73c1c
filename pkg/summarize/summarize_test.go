package summarize

import (
	"strings"
	"testing"

	"github.com/gleanhq/glean/models"
)

func TestSummarizeEmptyContent(t *testing.T) {
	got := Summarize(models.PageContent{URL: "https://example.com/x"})
	if !got.IsEmpty() {
		t.Errorf("Summarize(empty) = %+v, want empty summary", got)
	}
}

func TestSummarizeAllShortSentences(t *testing.T) {
	content := models.PageContent{
		URL:        "https://example.com/x",
		Paragraphs: []string{"Too short. Also short.", "Tiny."},
	}
	got := Summarize(content)
	if !got.IsEmpty() {
		t.Errorf("Summarize(short-only) = %+v, want empty summary", got)
	}
}

func TestSummarizeOrdersByScoreNotPosition(t *testing.T) {
	content := models.PageContent{
		URL: "https://example.com/x",
		Paragraphs: []string{
			"Nothing remarkable happens inside this opening paragraph sentence.",
			"Filler content sits quietly here, minding its own business fully.",
			"Tokens tokens tokens dominate scoring whenever tokens repeat often.",
		},
	}

	got := Summarize(content)
	if len(got.SummaryPoints) != 3 {
		t.Fatalf("len(SummaryPoints) = %d, want 3", len(got.SummaryPoints))
	}
	if !strings.HasPrefix(got.SummaryPoints[0], "Tokens tokens") {
		t.Errorf("SummaryPoints[0] = %q, want the repeated-keyword sentence first",
			got.SummaryPoints[0])
	}
	if !strings.HasPrefix(got.SummaryPoints[1], "Nothing remarkable") {
		t.Errorf("SummaryPoints[1] = %q, want the paragraph-0 sentence second",
			got.SummaryPoints[1])
	}
}

func TestSummarizeHeadingProximityWins(t *testing.T) {
	content := models.PageContent{
		URL:      "https://example.com/x",
		Headings: []string{"Latency"},
		Paragraphs: []string{
			"This sentence talks about latency in systems. This sentence talks about puddings in systems.",
		},
	}

	got := Summarize(content)
	if len(got.SummaryPoints) != 2 {
		t.Fatalf("len(SummaryPoints) = %d, want 2", len(got.SummaryPoints))
	}
	if !strings.Contains(got.SummaryPoints[0], "latency") {
		t.Errorf("SummaryPoints[0] = %q, want the heading-matched sentence first",
			got.SummaryPoints[0])
	}
}

func TestSummaryPointBudgetAndUniqueness(t *testing.T) {
	shared := strings.Repeat("repeatable ", 5) // 55 chars, identical 50-char prefix
	content := models.PageContent{URL: "https://example.com/x"}
	content.Paragraphs = append(content.Paragraphs,
		shared+"ends one way, with plenty of tail text following.",
		shared+"ends another way entirely, diverging after the prefix.",
	)
	// Filler sentences with disjoint vocabularies so the duplicated pair
	// stays on top of the ranking.
	content.Paragraphs = append(content.Paragraphs,
		"Apples ripen slowly under autumn sunshine, gaining sweetness each day.",
		"Mountains erode gradually while rivers carve canyons deeper downstream.",
		"Pianists rehearse scales nightly, refining finger technique before recitals.",
		"Sailboats drift westward when evening breezes calm near harbor walls.",
		"Ceramic mugs cool rapidly once morning coffee disappears from kitchens.",
		"Falcons hunt rodents across open prairie grassland during winter months.",
	)

	got := Summarize(content)
	if len(got.SummaryPoints) != models.MaxSummaryPoints {
		t.Fatalf("len(SummaryPoints) = %d, want %d", len(got.SummaryPoints), models.MaxSummaryPoints)
	}

	sharedCount := 0
	seen := make(map[string]struct{})
	for _, p := range got.SummaryPoints {
		if strings.HasPrefix(p, shared) {
			sharedCount++
		}
		key := strings.ToLower(p)
		if len(key) > prefixLen {
			key = key[:prefixLen]
		}
		if _, dup := seen[key]; dup {
			t.Errorf("summary points share a %d-char prefix: %q", prefixLen, p)
		}
		seen[key] = struct{}{}
	}
	if sharedCount != 1 {
		t.Errorf("prefix-duplicate sentences selected %d times, want 1", sharedCount)
	}
}

func TestSummarizeCollectsDefinitions(t *testing.T) {
	content := models.PageContent{
		URL: "https://example.com/db",
		Paragraphs: []string{
			"A database index is a structure that speeds up lookups on large tables.",
			"Normalization is defined as organizing data to reduce redundancy everywhere.",
			"This replication process is known as sharding in distributed database systems.",
			"A transaction means an atomic unit of work executed against the database.",
		},
	}

	got := Summarize(content)
	if len(got.Definitions) != models.MaxDefinitions {
		t.Fatalf("len(Definitions) = %d, want %d", len(got.Definitions), models.MaxDefinitions)
	}
	// Document order, first three qualifying sentences.
	if !strings.HasPrefix(got.Definitions[0], "A database index") {
		t.Errorf("Definitions[0] = %q, want the is-a-structure-that sentence", got.Definitions[0])
	}
	if !strings.HasPrefix(got.Definitions[1], "Normalization") {
		t.Errorf("Definitions[1] = %q, want the defined-as sentence", got.Definitions[1])
	}
	if !strings.HasPrefix(got.Definitions[2], "This replication") {
		t.Errorf("Definitions[2] = %q, want the known-as sentence", got.Definitions[2])
	}
}

func TestSummarizeSkipsOutOfRangeDefinitions(t *testing.T) {
	long := "An operating system is defined as " + strings.Repeat("very ", 60) + "large software."
	content := models.PageContent{
		URL: "https://example.com/os",
		Paragraphs: []string{
			"RAM is a type of memory.", // under 30 chars
			long,                       // over 300 chars
		},
	}

	got := Summarize(content)
	if len(got.Definitions) != 0 {
		t.Errorf("Definitions = %v, want none outside [30,300]", got.Definitions)
	}
}

func TestSummarizeCollectsExamples(t *testing.T) {
	content := models.PageContent{
		URL: "https://example.com/cache",
		Paragraphs: []string{
			"For example, a cache can keep frequently used database rows in memory.",
			"Engineers rely on caches like Redis and Memcached in daily production work.",
			"In practice, cache invalidation remains the hardest part of the design.",
		},
	}

	got := Summarize(content)
	if len(got.Examples) != models.MaxExamples {
		t.Fatalf("len(Examples) = %d, want %d", len(got.Examples), models.MaxExamples)
	}
	if !strings.HasPrefix(got.Examples[0], "For example") {
		t.Errorf("Examples[0] = %q, want the for-example sentence", got.Examples[0])
	}
	if !strings.Contains(got.Examples[1], "like Redis and Memcached") {
		t.Errorf("Examples[1] = %q, want the like-X-and-Y sentence", got.Examples[1])
	}
}

func TestSummarizeCapturesScenarioExample(t *testing.T) {
	content := models.PageContent{
		URL:      "https://example.com/lessons/react-basics",
		Title:    "Understanding React",
		Headings: []string{"React Basics"},
		Paragraphs: []string{
			"React is a JavaScript library for building user interfaces.",
			"For example, component state changes trigger hooks like useState.",
		},
	}

	got := Summarize(content)

	found := false
	for _, ex := range got.Examples {
		if strings.HasPrefix(ex, "For example, component state") {
			found = true
		}
	}
	if !found {
		t.Errorf("Examples = %v, want the component-state sentence captured", got.Examples)
	}
	if len(got.SummaryPoints) == 0 {
		t.Errorf("SummaryPoints empty, want at least one sentence")
	}
}

func TestScoreSentence(t *testing.T) {
	freq := map[string]int{"cache": 3, "latency": 7, "single": 1}
	headings := map[string]struct{}{"cache": {}}

	s := sentence{text: "Cache latency cache single word problems persist.", paraIndex: 1}
	// cache: freq credit 3 + heading 3, twice; latency: capped at 5;
	// single has frequency 1, no credit; position bonus 5-1.
	want := (3+3)*2 + 5 + 4
	if got := scoreSentence(s, freq, headings); got != want {
		t.Errorf("scoreSentence() = %d, want %d", got, want)
	}
}

func TestScoreSentenceMarkers(t *testing.T) {
	s := sentence{text: "It is important, however, to stop.", paraIndex: -1}
	// +2 importance, +1 discourse, no position or length bonus.
	if got := scoreSentence(s, map[string]int{}, map[string]struct{}{}); got != 3 {
		t.Errorf("scoreSentence() = %d, want 3", got)
	}
}

func TestScoreSentenceLengthBonus(t *testing.T) {
	mid := sentence{text: strings.Repeat("ab ", 25), paraIndex: -1}    // 75 chars
	long := sentence{text: strings.Repeat("ab ", 84), paraIndex: -1}   // 252 chars
	huge := sentence{text: strings.Repeat("ab ", 120), paraIndex: -1}  // 360 chars
	short := sentence{text: strings.Repeat("ab ", 12), paraIndex: -1}  // 36 chars

	empty := map[string]int{}
	none := map[string]struct{}{}
	if got := scoreSentence(mid, empty, none); got != 2 {
		t.Errorf("mid-length score = %d, want 2", got)
	}
	if got := scoreSentence(long, empty, none); got != 1 {
		t.Errorf("long score = %d, want 1", got)
	}
	if got := scoreSentence(huge, empty, none); got != 0 {
		t.Errorf("over-300 score = %d, want 0", got)
	}
	if got := scoreSentence(short, empty, none); got != 0 {
		t.Errorf("short score = %d, want 0", got)
	}
}

func TestSummarizeIsDeterministic(t *testing.T) {
	content := models.PageContent{
		URL:      "https://example.com/x",
		Headings: []string{"Caching"},
		Paragraphs: []string{
			"Caching is a technique that stores computed results for later reuse.",
			"For example, a memoized function returns cached answers immediately.",
			"The main benefit is speed; however, stale data is a constant concern.",
		},
	}

	first := Summarize(content)
	for i := 0; i < 10; i++ {
		again := Summarize(content)
		if len(again.SummaryPoints) != len(first.SummaryPoints) {
			t.Fatalf("summary size changed between runs")
		}
		for j := range again.SummaryPoints {
			if again.SummaryPoints[j] != first.SummaryPoints[j] {
				t.Fatalf("SummaryPoints[%d] changed: %q vs %q",
					j, again.SummaryPoints[j], first.SummaryPoints[j])
			}
		}
	}
}
