package summarize

import "regexp"

// Trigger patterns run against normalized sentences. Matching is
// case-insensitive; patterns anchor on word boundaries so embedded
// fragments never trigger.

var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bis\s+(a|an|the)\s+(type|kind|form|method|way|process|technique|approach)\b`),
	regexp.MustCompile(`(?i)\bdefined\s+as\b`),
	regexp.MustCompile(`(?i)\bknown\s+as\b`),
	regexp.MustCompile(`(?i)\b(means|refers\s+to|represents)\b`),
	regexp.MustCompile(`(?i)\bis\s+(a|an)\s+\w+\s+(that|which|where)\b`),
	regexp.MustCompile(`(?i)\bcan\s+be\s+defined\s+as\b`),
}

var examplePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bfor\s+example\b`),
	regexp.MustCompile(`(?i)\bsuch\s+as\b`),
	regexp.MustCompile(`(?i)\breal[- ]world\b`),
	regexp.MustCompile(`(?i)\bused\s+in\b`),
	regexp.MustCompile(`(?i)\bfor\s+instance\b`),
	regexp.MustCompile(`(?i)\be\.g\.`),
	regexp.MustCompile(`(?i)\blike\s+\w+(\s+and\s+\w+)?`),
	regexp.MustCompile(`(?i)\bin\s+practice\b`),
	regexp.MustCompile(`(?i)\breal[- ]life\s+(example|application|use)\b`),
}

var importancePattern = regexp.MustCompile(
	`(?i)\b(important|key|main|essential|crucial|critical|significant|fundamental|vital)\b`)

var discoursePattern = regexp.MustCompile(
	`(?i)\b(first|second|third|finally|however|moreover|furthermore|additionally|therefore|thus|consequently)\b`)

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
