package conversationnode

import (
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
)

func TestReplyTextStripsReasoning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "We have iPhone 15.", want: "We have iPhone 15."},
		{in: "<think>user wants a list</think>\n\nWe have iPhone 15.", want: "We have iPhone 15."},
		{in: "<think>a</think>Hi <think>b</think>there", want: "Hi there"},
		{in: "user wants a list\n</think>\nWe have iPhone 15.", want: "We have iPhone 15."},
		{in: "We have iPhone 15.<think>unterminated", want: "We have iPhone 15."},
		{in: "<think>only thinking</think>", want: ""},
	}
	for _, tt := range tests {
		if got := replyText(schema.AssistantMessage(tt.in, nil)); got != tt.want {
			t.Fatalf("replyText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := replyText(nil); got != "" {
		t.Fatalf("replyText(nil) = %q", got)
	}
}

func TestFinalizeReplyRejectsThinkingOnly(t *testing.T) {
	t.Parallel()

	_, err := FinalizeReply(&GraphState{Reply: schema.AssistantMessage("<think>hmm</think>", nil)})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	out, err := FinalizeReply(&GraphState{Reply: schema.AssistantMessage("<think>hmm</think> Redmi Note 13 is 6990.", nil)})
	if err != nil {
		t.Fatalf("FinalizeReply() error = %v", err)
	}
	if out.Reply != "Redmi Note 13 is 6990." {
		t.Fatalf("unexpected reply: %q", out.Reply)
	}
}
