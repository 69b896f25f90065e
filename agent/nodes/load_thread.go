package conversationnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/state"
)

// LoadThread fetches the thread history, starting a new one when the store has
// none, and appends the incoming user message.
func LoadThread(ctx context.Context, in *GraphState, store statex.Store) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	st, err := store.Load(ctx, in.ThreadID)
	switch {
	case err == nil:
	case errors.Is(err, statex.ErrStateNotFound):
		log.Debug().Str("thread_id", in.ThreadID).Msg("starting new thread")
		st = statex.NewThreadState(in.ThreadID, in.Now)
	default:
		return nil, fmt.Errorf("load thread %s: %w", in.ThreadID, err)
	}

	st.Append(schema.UserMessage(in.Text))
	in.Thread = st
	return in, nil
}
