package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

// ThreadState is one conversation's message history, keyed by ThreadID.
// System messages are never stored; the assistant injects its own.
type ThreadState struct {
	ThreadID  string            `json:"thread_id"`
	Messages  []*schema.Message `json:"messages"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

var ErrInvalidRole = errors.New("invalid message role in thread")

func NewThreadState(threadID string, now time.Time) *ThreadState {
	return &ThreadState{
		ThreadID:  threadID,
		Messages:  make([]*schema.Message, 0, 8),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (t *ThreadState) Touch(now time.Time) {
	t.UpdatedAt = now.UTC()
}

func (t *ThreadState) Append(msgs ...*schema.Message) {
	for _, m := range msgs {
		if m != nil {
			t.Messages = append(t.Messages, m)
		}
	}
}

// Trim keeps at most max messages, dropping the oldest. The kept window always
// starts at a user message so the model never sees an orphaned reply. When the
// window holds no user message, the newest user message and everything after
// it are kept even if that exceeds max. max <= 0 disables trimming.
func (t *ThreadState) Trim(max int) {
	if max <= 0 || len(t.Messages) <= max {
		return
	}

	start := len(t.Messages) - max
	for start < len(t.Messages) && t.Messages[start].Role != schema.User {
		start++
	}
	if start == len(t.Messages) {
		start = lastUserIndex(t.Messages)
	}
	kept := make([]*schema.Message, len(t.Messages)-start)
	copy(kept, t.Messages[start:])
	t.Messages = kept
}

func lastUserIndex(msgs []*schema.Message) int {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == schema.User {
			return i
		}
	}
	return 0
}

// History returns a copy of the stored messages.
func (t *ThreadState) History() []*schema.Message {
	out := make([]*schema.Message, len(t.Messages))
	copy(out, t.Messages)
	return out
}

func (t *ThreadState) Validate() error {
	if t == nil {
		return ErrNilThreadState
	}
	if strings.TrimSpace(t.ThreadID) == "" {
		return ErrInvalidThread
	}
	for i, m := range t.Messages {
		if m == nil {
			return fmt.Errorf("%w: nil message at %d", ErrInvalidRole, i)
		}
		switch m.Role {
		case schema.User, schema.Assistant, schema.Tool:
		default:
			return fmt.Errorf("%w: role=%q at %d", ErrInvalidRole, m.Role, i)
		}
	}
	return nil
}

func cloneThreadState(t *ThreadState) *ThreadState {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Messages = t.History()
	return &cp
}
