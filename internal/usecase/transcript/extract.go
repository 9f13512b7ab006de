package transcript

import (
	"encoding/json"
	"strings"
)

// textFields are checked in order; the first non-empty one wins
var textFields = []string{"text", "transcript", "content"}

// Pointer says where a transcript comes from. Inline wins over URL.
type Pointer struct {
	Inline string
	URL    string
}

// IsZero reports whether the pointer names no transcript at all
func (p Pointer) IsZero() bool {
	return strings.TrimSpace(p.Inline) == "" && strings.TrimSpace(p.URL) == ""
}

// PointerFromData reads the transcript pointer out of a webhook data
// object. Accepted shapes: data.transcript as a string, data.transcript.url,
// data.transcript.data.download_url and data.transcript_url.
func PointerFromData(data map[string]any) Pointer {
	var p Pointer
	if data == nil {
		return p
	}

	switch t := data["transcript"].(type) {
	case string:
		if isURL(t) {
			p.URL = t
		} else {
			p.Inline = t
		}
	case map[string]any:
		if u, ok := t["url"].(string); ok {
			p.URL = u
		}
		if inner, ok := t["data"].(map[string]any); ok && p.URL == "" {
			if u, ok := inner["download_url"].(string); ok {
				p.URL = u
			}
		}
	}

	if p.URL == "" {
		if u, ok := data["transcript_url"].(string); ok {
			p.URL = u
		}
	}
	return p
}

// ExtractText pulls transcript text out of a fetched document. Objects are
// read from text, transcript or content; segment lists of
// {speaker, words|text} are flattened to "Speaker: text" lines. Anything
// else yields an empty string.
func ExtractText(body []byte) string {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	return strings.TrimSpace(textOf(doc))
}

func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		return flattenSegments(t)
	case map[string]any:
		for _, field := range textFields {
			if s := textOf(t[field]); strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

func flattenSegments(segments []any) string {
	lines := make([]string, 0, len(segments))
	for _, raw := range segments {
		seg, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		text := segmentText(seg)
		if text == "" {
			continue
		}
		if speaker := speakerName(seg); speaker != "" {
			text = speaker + ": " + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func segmentText(seg map[string]any) string {
	if s, ok := seg["text"].(string); ok {
		return strings.TrimSpace(s)
	}
	words, ok := seg["words"].([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(words))
	for _, w := range words {
		switch word := w.(type) {
		case string:
			parts = append(parts, word)
		case map[string]any:
			if s, ok := word["text"].(string); ok {
				parts = append(parts, s)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func speakerName(seg map[string]any) string {
	switch s := seg["speaker"].(type) {
	case string:
		return s
	case map[string]any:
		if name, ok := s["name"].(string); ok {
			return name
		}
	}
	if p, ok := seg["participant"].(map[string]any); ok {
		if name, ok := p["name"].(string); ok {
			return name
		}
	}
	return ""
}

func isURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
