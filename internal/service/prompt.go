package service

import (
	"fmt"
	"strings"

	"newsrag/internal/domain"
)

const (
	excerptsLabel      = "Here are some relevant excerpts from news articles:"
	closingInstruction = "Based on the articles, please answer the user's question clearly and cite relevant snippets if possible."
)

// BuildContext renders hits as numbered article blocks joined by a blank line.
// No hits yield an empty string.
func BuildContext(hits []domain.SearchHit) string {
	blocks := make([]string, 0, len(hits))
	for i, h := range hits {
		blocks = append(blocks, fmt.Sprintf("--- Article %d: %s ---\nURL: %s\n\n%s\n", i+1, h.Title, h.URL, h.Chunk))
	}
	return strings.Join(blocks, "\n\n")
}

// BuildPrompt composes the single user message sent to the chat model.
func BuildPrompt(query, context string) string {
	var b strings.Builder
	b.WriteString("User question:\n\"")
	b.WriteString(query)
	b.WriteString("\"\n\n")
	b.WriteString(excerptsLabel)
	b.WriteString("\n\n")
	b.WriteString(context)
	b.WriteString("\n\n")
	b.WriteString(closingInstruction)
	return b.String()
}
