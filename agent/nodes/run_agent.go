package conversationnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
)

func RunAgent(ctx context.Context, in *GraphState, responder contractx.Responder) (*GraphState, error) {
	if in == nil || in.Thread == nil {
		return nil, fmt.Errorf("%w: thread is not loaded", contractx.ErrValidation)
	}

	reply, err := responder.Respond(ctx, in.Thread.History())
	if err != nil {
		return nil, err
	}
	in.Reply = reply
	return in, nil
}
