package outputs

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
)

const (
	rollupMeetingLimit   = 10
	rollupDetailedCount  = 3
	pipelineMeetingLimit = 5

	fullTranscriptExcerpt = 1500
	shortSummaryLimit     = 200
)

// rollupInput is everything Stage 3 reads about a client
type rollupInput struct {
	client        *entities.Client
	meetings      []*entities.Meeting // newest first
	opportunities []*entities.BusinessOpportunity
	actionItems   []*entities.ActionItem
	todos         []*entities.ClientTodo
	hasUpcoming   bool
}

// buildRollupContext renders the recency-weighted client history. The
// newest meetings carry summary, action points and a transcript excerpt;
// older ones only a short summary.
func buildRollupContext(in rollupInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Client: %s\n", in.client.Name)
	if in.hasUpcoming {
		b.WriteString("Upcoming meeting: booked\n")
	} else {
		b.WriteString("Upcoming meeting: none booked\n")
	}

	writeOpportunities(&b, in.opportunities)

	if len(in.meetings) > 0 {
		b.WriteString("\nMeetings (newest first):\n")
	}
	for i, m := range in.meetings {
		fmt.Fprintf(&b, "- %s (%s)\n", meetingTitle(m), m.StartsAt.Format("2006-01-02"))
		if i < rollupDetailedCount {
			writeIfSet(&b, "  Summary: ", entities.StringValue(m.QuickSummary))
			writeIfSet(&b, "  Action points:\n", indent(entities.StringValue(m.ActionPoints), "    "))
			writeIfSet(&b, "  Transcript excerpt: ", truncateRunes(m.TranscriptText(), fullTranscriptExcerpt))
			continue
		}
		writeIfSet(&b, "  Summary: ", truncateRunes(entities.StringValue(m.QuickSummary), shortSummaryLimit))
	}

	if len(in.actionItems) > 0 || len(in.todos) > 0 {
		b.WriteString("\nOutstanding action items:\n")
		for _, item := range in.actionItems {
			fmt.Fprintf(&b, "- [P%d] %s\n", item.Priority, item.ActionText)
		}
		for _, todo := range in.todos {
			fmt.Fprintf(&b, "- %s\n", todo.Title)
		}
	}

	return b.String()
}

// buildPipelineContext renders the inputs of Stage 4
func buildPipelineContext(client *entities.Client, opportunities []*entities.BusinessOpportunity, meetings []*entities.Meeting) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Client: %s\n", client.Name)
	writeOpportunities(&b, opportunities)
	writeIfSet(&b, "\nPipeline notes: ", entities.StringValue(client.PipelineNotes))

	if len(meetings) > 0 {
		b.WriteString("\nRecent meetings (newest first):\n")
	}
	for _, m := range meetings {
		fmt.Fprintf(&b, "- %s (%s)\n", meetingTitle(m), m.StartsAt.Format("2006-01-02"))
		writeIfSet(&b, "  Summary: ", entities.StringValue(m.QuickSummary))
		writeIfSet(&b, "  Action points:\n", indent(entities.StringValue(m.ActionPoints), "    "))
	}

	return b.String()
}

func writeOpportunities(b *strings.Builder, opportunities []*entities.BusinessOpportunity) {
	if len(opportunities) == 0 {
		b.WriteString("Business opportunities: none recorded\n")
		return
	}
	b.WriteString("Business opportunities:\n")
	for _, o := range opportunities {
		fmt.Fprintf(b, "- %s", o.BusinessType)
		if o.BusinessAmount != nil {
			fmt.Fprintf(b, ", amount %.2f", *o.BusinessAmount)
		}
		if o.ContributionMethod != nil && *o.ContributionMethod != "" {
			fmt.Fprintf(b, ", via %s", *o.ContributionMethod)
		}
		if o.ExpectedCloseDate != nil {
			fmt.Fprintf(b, ", expected close %s", o.ExpectedCloseDate.Format("2006-01-02"))
		}
		if o.Notes != nil && *o.Notes != "" {
			fmt.Fprintf(b, " (%s)", *o.Notes)
		}
		b.WriteString("\n")
	}
}

func meetingTitle(m *entities.Meeting) string {
	if strings.TrimSpace(m.Title) == "" {
		return "Untitled meeting"
	}
	return m.Title
}

func writeIfSet(b *strings.Builder, prefix, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString(prefix)
	b.WriteString(value)
	b.WriteString("\n")
}

func indent(s, pad string) string {
	if s == "" {
		return ""
	}
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

func meetingIDs(meetings []*entities.Meeting) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(meetings))
	for _, m := range meetings {
		ids = append(ids, m.ID)
	}
	return ids
}
