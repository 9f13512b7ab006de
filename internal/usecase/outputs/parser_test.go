package outputs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuickOutput(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		max       int
		summary   string
		items     []ActionItem
		expectErr bool
	}{
		{
			name:    "fenced json with mixed items",
			raw:     "```json\n{\"summary\":\"Pension top-up agreed.\",\"action_items\":[\"Send forms\",{\"text\":\"Call provider\",\"priority\":1}]}\n```",
			max:     7,
			summary: "Pension top-up agreed.",
			items:   []ActionItem{{Text: "Send forms", Priority: 3}, {Text: "Call provider", Priority: 1}},
		},
		{
			name:    "out of range priority falls back to default",
			raw:     `{"summary":"s","action_items":[{"action":"Do it","priority":9}]}`,
			max:     7,
			summary: "s",
			items:   []ActionItem{{Text: "Do it", Priority: 3}},
		},
		{
			name:    "items capped",
			raw:     `{"summary":"s","action_items":["a","b","c"]}`,
			max:     2,
			summary: "s",
			items:   []ActionItem{{Text: "a", Priority: 3}, {Text: "b", Priority: 3}},
		},
		{
			name:    "plain text fallback",
			raw:     "Summary: Client wants a pension review.\n\n1. Book review\n- Send fact find\n* Chase provider",
			max:     7,
			summary: "Client wants a pension review.",
			items: []ActionItem{
				{Text: "Book review", Priority: 3},
				{Text: "Send fact find", Priority: 3},
				{Text: "Chase provider", Priority: 3},
			},
		},
		{
			name:      "json without summary",
			raw:       `{"summary":"","action_items":["a"]}`,
			max:       7,
			expectErr: true,
		},
		{
			name:      "empty response",
			raw:       "   ",
			max:       7,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseQuickOutput(tt.raw, tt.max)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.summary, out.Summary)
			assert.Equal(t, tt.items, out.ActionItems)
		})
	}
}

func TestRenderActionPoints(t *testing.T) {
	assert.Equal(t, "1. a\n2. b", RenderActionPoints([]ActionItem{{Text: "a"}, {Text: "b"}}))
	assert.Equal(t, "", RenderActionPoints(nil))
}
