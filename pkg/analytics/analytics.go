// Package analytics provides the word-level text statistics shared by the
// summarizer and the capture reports: tokenization, stop-word filtering and
// frequency counts.
package analytics

import "strings"

// MinWordLength is the shortest token that carries signal. Shorter words
// are dropped before stop-word filtering.
const MinWordLength = 4

// stopWords holds function words and web noise that should never count as
// content keywords. Words shorter than MinWordLength are excluded by the
// length gate already and are not listed.
var stopWords = makeSet(`
	about above across after again against almost along already also
	although always among anyone anything anywhere around because been
	before behind being below beside besides between beyond both cannot
	could does doing done down during each either else elsewhere enough
	even ever every everyone everything everywhere from further have
	having here hers herself himself however into itself just keep least
	less like likely made make many maybe meanwhile might mine more
	moreover most mostly much must myself neither never nevertheless next
	none nothing often once only onto other others otherwise ours
	ourselves over part perhaps please rather same seem seemed seeming
	seems several shall should since some somehow someone something
	sometimes somewhere still such take than that their theirs them
	themselves then thence there therefore these they this those through
	throughout thus together toward towards under until upon very want
	well were what whatever when whenever where whereas whether which
	while whoever whole whom whose will with within without would your
	yours yourself yourselves

	don't doesn't didn't isn't aren't wasn't weren't haven't hasn't
	hadn't won't wouldn't can't couldn't shouldn't that's there's here's
	it's let's they're you're we're i've you've we've they've i'll
	you'll we'll they'll

	click clicked clicking button menu link page pages website site home
	homepage search loading loaded cookie cookies privacy policy
	subscribe newsletter copyright rights reserved
`)

func makeSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether a word carries no content signal.
func IsStopword(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// CleanToken lowercases a raw token and trims leading/trailing
// punctuation. Interior characters stay, so tokens like x_train and
// don't survive intact.
func CleanToken(word string) string {
	word = strings.ToLower(word)
	return strings.TrimFunc(word, func(r rune) bool {
		return ('a' > r || r > 'z') && ('0' > r || r > '9')
	})
}

// Tokens splits text into content tokens: lowercase, punctuation-trimmed,
// at least MinWordLength long and not stop words.
func Tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))

	for _, word := range fields {
		word = CleanToken(word)
		if len(word) < MinWordLength {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// WordFrequency counts content tokens in text.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, token := range Tokens(text) {
		frequencies[token]++
	}
	return frequencies
}
