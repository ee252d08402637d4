package tutor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/Nirjal444/MATHBOT/internal/model/chat"
)

// extractContent pulls the textual payload out of a model message, trying a
// fixed sequence of shapes: plain content, concatenated text parts of a
// multi-part message, then the whole message rendered as a string.
func extractContent(msg *schema.Message) string {
	if msg == nil {
		return ""
	}

	if msg.Content != "" {
		return msg.Content
	}

	if len(msg.MultiContent) > 0 {
		var b strings.Builder
		for _, part := range msg.MultiContent {
			if part.Type == schema.ChatMessagePartTypeText {
				b.WriteString(part.Text)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}

	return fmt.Sprintf("%v", msg)
}

// parseAnswer interprets extracted model output as the instructed JSON object.
// It tries the text as-is, then with a surrounding code fence stripped. When
// neither parses, both fields carry the raw text.
func parseAnswer(content string) chat.Answer {
	for _, candidate := range []string{content, stripCodeFence(content)} {
		var parsed struct {
			Explanation string `json:"explanation"`
			Explain     string `json:"explain"`
			Speech      string `json:"speech"`
			Speak       string `json:"speak"`
		}
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			continue
		}

		explanation := firstNonEmpty(parsed.Explanation, parsed.Explain, candidate)
		speech := firstNonEmpty(parsed.Speech, parsed.Speak, explanation)
		return chat.Answer{Explanation: explanation, Speech: speech}
	}

	return chat.Answer{Explanation: content, Speech: content}
}

// stripCodeFence removes a ``` or ```json wrapper some models add despite the
// JSON-only instruction.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
