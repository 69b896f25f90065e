package conversationnode

import (
	"regexp"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// thinkBlock matches the reasoning section that R1-style models emit inline
// before their answer.
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// replyText returns the user-facing part of an assistant message. Reasoning
// blocks are removed; a dangling </think> means the opening tag was cut off by
// the chat template, so everything before it is dropped too.
func replyText(msg *schema.Message) string {
	if msg == nil {
		return ""
	}
	text := thinkBlock.ReplaceAllString(msg.Content, "")
	if i := strings.LastIndex(text, "</think>"); i >= 0 {
		text = text[i+len("</think>"):]
	}
	if i := strings.Index(text, "<think>"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
