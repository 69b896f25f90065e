package conversationnode

import (
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	statex "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidThread  = statex.ErrInvalidThread
)

type GraphInput struct {
	ThreadID string
	Text     string
}

type GraphOutput struct {
	Reply string
}

type GraphState struct {
	ThreadID string
	Text     string
	Now      time.Time

	Thread *statex.ThreadState
	Reply  *schema.Message
}

func ValidateRequest(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	threadID := strings.TrimSpace(in.ThreadID)
	if threadID == "" {
		return nil, ErrInvalidThread
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}

	return &GraphState{
		ThreadID: threadID,
		Text:     text,
		Now:      nowFn().UTC(),
	}, nil
}
