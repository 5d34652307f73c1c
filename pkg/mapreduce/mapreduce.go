// Package mapreduce aggregates word frequencies across captured pages so a
// run can report what its sources were actually about.
package mapreduce

import "github.com/gleanhq/glean/pkg/analytics"

// Map generates a word frequency map for a single document's text.
func Map(text string) map[string]int {
	return analytics.WordFrequency(text)
}

// Reduce aggregates per-document frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
