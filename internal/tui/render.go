package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"newsrag/internal/domain"
	"newsrag/internal/summarizer"
)

const appTitle = "📰 Tech Education & Hiring Market Trends"

// RenderOptions controls how a result is laid out.
type RenderOptions struct {
	// Selected marks one article; -1 marks none.
	Selected int
	// Expanded reports whether article i shows its full snippet. Nil expands all.
	Expanded func(i int) bool
	// Width wraps long text when positive.
	Width int
}

// Render lays out the question, the ranked articles and the answer.
func Render(res domain.Result, previewer domain.Previewer, opts RenderOptions) string {
	wrap := lipgloss.NewStyle()
	if opts.Width > 0 {
		wrap = wrap.Width(opts.Width)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("💬 Your Question"))
	b.WriteString("\n")
	b.WriteString(wrap.Render("> " + res.Query))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("📄 Relevant Articles"))
	b.WriteString("\n")
	if len(res.Hits) == 0 {
		b.WriteString(dimStyle.Render("No relevant articles found."))
		b.WriteString("\n")
	}
	for i, h := range res.Hits {
		marker := "  "
		if i == opts.Selected {
			marker = selectedStyle.Render("▶ ")
		}
		b.WriteString(marker + articleStyle.Render(h.Title))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  score=%.3f", h.Score)))
		b.WriteString("\n")
		b.WriteString("  🔗 Read more: " + linkStyle.Render(h.URL))
		b.WriteString("\n")
		if opts.Expanded == nil || opts.Expanded(i) {
			b.WriteString(fmt.Sprintf("  ▾ Snippet %d\n", i+1))
			b.WriteString(wrap.Render(highlightBestSentence(h.Chunk, res.Query)))
		} else {
			preview := h.Chunk
			if previewer != nil {
				preview = previewer.Preview(h.Chunk)
			}
			b.WriteString(fmt.Sprintf("  ▸ Snippet %d: ", i+1))
			b.WriteString(wrap.Render(dimStyle.Render(preview)))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(sectionStyle.Render("🤖 AI Answer"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(res.Answer))
	return b.String()
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	articleStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	linkStyle      = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("14"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	unicodeWordRe  = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
)

// highlightBestSentence emphasises the sentence sharing the most words with
// the query. The rest of text is returned as is.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	sentences := summarizer.SplitSentences(text)
	bestIdx := 0
	bestScore := 0
	for i, s := range sentences {
		if score := tokenOverlapScore(qTokens, s); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestScore == 0 {
		return text
	}
	best := sentences[bestIdx]
	core := strings.TrimSpace(best)
	lead := best[:strings.Index(best, core)]
	sentences[bestIdx] = lead + highlightStyle.Render(core) + best[len(lead)+len(core):]
	return strings.Join(sentences, "")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
