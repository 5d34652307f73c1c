package mapreduce

import (
	"testing"
)

func TestMapReduce(t *testing.T) {
	docs := []string{
		"Caching keeps latency down. Caching also keeps databases calm.",
		"Latency spikes hurt. Measure latency before tuning anything else.",
	}

	intermediate := make([]map[string]int, 0, len(docs))
	for _, doc := range docs {
		intermediate = append(intermediate, Map(doc))
	}
	total := Reduce(intermediate)

	if got := total["caching"]; got != 2 {
		t.Errorf("total[caching] = %d, want 2", got)
	}
	if got := total["latency"]; got != 3 {
		t.Errorf("total[latency] = %d, want 3", got)
	}
	if got := total["keeps"]; got != 2 {
		t.Errorf("total[keeps] = %d, want 2", got)
	}
}

func TestReduceEmpty(t *testing.T) {
	total := Reduce(nil)
	if len(total) != 0 {
		t.Errorf("Reduce(nil) = %v, want empty map", total)
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{
		"learning": 10,
		"models":   7,
		"tensors":  7,
		"layers":   2,
	}

	got := TopKeywords(counts, 3)
	want := []string{"learning:10", "models:7", "tensors:7"}

	if len(got) != len(want) {
		t.Fatalf("TopKeywords() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TopKeywords()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopKeywordsFiltersMalformed(t *testing.T) {
	counts := map[string]int{
		"malformed(": 50,
		"odd'quote":  40,
		"x_train":    3,
	}

	got := TopKeywords(counts, 10)
	if len(got) != 1 || got[0] != "x_train:3" {
		t.Errorf("TopKeywords() = %v, want [x_train:3]", got)
	}
}

func TestTopKeywordsShortMap(t *testing.T) {
	got := TopKeywords(map[string]int{"solo": 1}, 5)
	if len(got) != 1 {
		t.Errorf("TopKeywords() = %v, want single entry", got)
	}
}
