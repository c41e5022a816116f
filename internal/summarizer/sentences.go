package summarizer

import "regexp"

// A sentence ends at terminal punctuation followed by whitespace or the end of
// the text, so decimals like 3.5 do not split.
var sentenceEndRe = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// SplitSentences cuts text into sentences, keeping the whitespace that follows
// each one and any unterminated tail. Joining the parts gives back text.
func SplitSentences(text string) []string {
	var parts []string
	start := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		parts = append(parts, text[start:loc[1]])
		start = loc[1]
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}
