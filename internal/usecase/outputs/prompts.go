package outputs

import (
	"fmt"
	"strings"
)

const (
	advisorSystemPrompt = "You are an assistant for a financial advisor. You write concise, factual notes from client meeting transcripts. Never invent facts that are not in the material you are given."

	// detailedTranscriptLimit keeps very long transcripts inside the model context
	detailedTranscriptLimit = 60000

	detailedMaxTokens = 3000
	rollupMaxTokens   = 300
	pipelineMaxTokens = 200
)

func clientLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return "the client"
	}
	return name
}

func quickSummaryPrompt(transcript, clientName string, maxItems int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarise this meeting with %s in a single sentence, then list at most %d concrete action items for the advisor.\n", clientLabel(clientName), maxItems)
	b.WriteString("Respond with JSON only, in this shape:\n")
	b.WriteString(`{"summary": "one sentence", "action_items": [{"text": "action", "priority": 1}]}`)
	b.WriteString("\nPriority is 1 (urgent) to 4 (low).\n\nTranscript:\n")
	b.WriteString(transcript)
	return b.String()
}

func detailedSummaryPrompt(transcript, clientName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a structured summary of this meeting with %s.\n", clientLabel(clientName))
	b.WriteString("Use these headings: Overview, Key Discussion Points, Client Goals and Concerns, Decisions, Next Steps.\n")
	b.WriteString("Use short bullet points under each heading.\n\nTranscript:\n")
	b.WriteString(truncateRunes(transcript, detailedTranscriptLimit))
	return b.String()
}

func rollupPrompt(clientName, context string, hasUpcoming bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a 2-3 sentence summary of the overall relationship with %s for the advisor.\n", clientLabel(clientName))
	b.WriteString("Cover the relationship status, business opportunities and next steps. Mention outstanding action items when there are any.\n")
	if !hasUpcoming {
		b.WriteString("There is no upcoming meeting booked with this client, so explicitly suggest booking one.\n")
	}
	b.WriteString("\n")
	b.WriteString(context)
	return b.String()
}

func pipelinePrompt(clientName, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "In at most 3 sentences, state the concrete next steps the advisor must take to close the in-progress business with %s.\n", clientLabel(clientName))
	b.WriteString("Be specific and actionable. Do not repeat background.\n\n")
	b.WriteString(context)
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
