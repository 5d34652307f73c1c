package models

// Budgets for each summary section.
const (
	MaxSummaryPoints = 5
	MaxDefinitions   = 3
	MaxExamples      = 2
)

// Summary is the extractive digest of a page. Summaries are computed on
// demand and never persisted.
type Summary struct {
	SummaryPoints []string `json:"summary_points" yaml:"summary_points"` // score-descending, capped at MaxSummaryPoints
	Definitions   []string `json:"definitions" yaml:"definitions"`       // document order, capped at MaxDefinitions
	Examples      []string `json:"examples" yaml:"examples"`             // document order, capped at MaxExamples
}

// IsEmpty reports whether the summary carries no content at all.
func (s *Summary) IsEmpty() bool {
	return len(s.SummaryPoints) == 0 && len(s.Definitions) == 0 && len(s.Examples) == 0
}
