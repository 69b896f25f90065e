package conversationnode

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/state"
)

// SaveThread records the final assistant reply and persists the thread.
// Intermediate tool calls and reasoning blocks are not kept; the next turn
// starts from the user/assistant transcript only.
func SaveThread(ctx context.Context, in *GraphState, store statex.Store, maxHistory int) (*GraphState, error) {
	if in == nil || in.Thread == nil {
		return nil, fmt.Errorf("%w: thread is not loaded", contractx.ErrValidation)
	}
	reply := replyText(in.Reply)
	if reply == "" {
		return nil, fmt.Errorf("%w: assistant returned empty message", contractx.ErrValidation)
	}

	in.Thread.Append(schema.AssistantMessage(reply, nil))
	in.Thread.Trim(maxHistory)
	in.Thread.Touch(in.Now)

	if err := store.Save(ctx, in.Thread); err != nil {
		return nil, fmt.Errorf("save thread %s: %w", in.ThreadID, err)
	}
	return in, nil
}
