package outputs

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
)

// ActionItem is one generated action item before it is persisted
type ActionItem struct {
	Text     string
	Priority int
}

// QuickOutput is the parsed Stage 1 response
type QuickOutput struct {
	Summary     string
	ActionItems []ActionItem
}

type quickResponse struct {
	Summary     string            `json:"summary"`
	ActionItems []json.RawMessage `json:"action_items"`
}

type actionItemResponse struct {
	Text     string `json:"text"`
	Action   string `json:"action"`
	Priority int    `json:"priority"`
}

// ParseQuickOutput reads the Stage 1 response. JSON of the form
// {"summary": "...", "action_items": [...]} is preferred, where items are
// plain strings or {"text", "priority"} objects. Free text is accepted too:
// the first line is the summary and bulleted or numbered lines are items.
// At most maxItems items are kept.
func ParseQuickOutput(raw string, maxItems int) (*QuickOutput, error) {
	out, err := parseQuickJSON(raw)
	if err != nil {
		out = parseQuickText(raw)
	}

	out.Summary = strings.TrimSpace(out.Summary)
	if out.Summary == "" {
		return nil, fmt.Errorf("missing summary in response")
	}

	if maxItems > 0 && len(out.ActionItems) > maxItems {
		out.ActionItems = out.ActionItems[:maxItems]
	}
	return out, nil
}

func parseQuickJSON(raw string) (*QuickOutput, error) {
	var resp quickResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	out := &QuickOutput{Summary: resp.Summary}
	for _, rawItem := range resp.ActionItems {
		var text string
		if err := json.Unmarshal(rawItem, &text); err == nil {
			out.addItem(text, entities.DefaultPriority)
			continue
		}

		var item actionItemResponse
		if err := json.Unmarshal(rawItem, &item); err != nil {
			continue
		}
		if item.Text == "" {
			item.Text = item.Action
		}
		out.addItem(item.Text, item.Priority)
	}
	return out, nil
}

func parseQuickText(raw string) *QuickOutput {
	out := &QuickOutput{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if item, ok := stripListMarker(line); ok {
			out.addItem(item, entities.DefaultPriority)
			continue
		}
		if out.Summary == "" {
			out.Summary = strings.TrimPrefix(line, "Summary:")
		}
	}
	return out
}

func (o *QuickOutput) addItem(text string, priority int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	o.ActionItems = append(o.ActionItems, ActionItem{
		Text:     text,
		Priority: entities.NormalizePriority(priority),
	})
}

// stripListMarker removes "- ", "* ", "• " or "1. " / "1) " from a list line
func stripListMarker(line string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return strings.TrimSpace(line[i+1:]), true
	}
	return "", false
}

// RenderActionPoints renders items as the numbered text stored on the meeting
func RenderActionPoints(items []ActionItem) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, strconv.Itoa(i+1)+". "+item.Text)
	}
	return strings.Join(lines, "\n")
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
