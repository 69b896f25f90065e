package conversationnode

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil || in.Reply == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state has no reply", contractx.ErrValidation)
	}

	reply := replyText(in.Reply)
	if reply == "" {
		return GraphOutput{}, fmt.Errorf("%w: assistant returned empty message", contractx.ErrValidation)
	}
	return GraphOutput{Reply: reply}, nil
}
