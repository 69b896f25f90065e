package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/nodes"
	statex "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/state"
)

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidThread  = nodex.ErrInvalidThread
)

type Config struct {
	MaxHistoryMessages int `envconfig:"MAX_HISTORY_MESSAGES" split_words:"true" default:"40"`
}

const (
	defaultMaxHistoryMessages = 40
	// one user message and its reply
	minHistoryMessages = 2
)

// Service handles one user turn at a time against a persisted thread.
type Service struct {
	store     statex.Store
	responder contractx.Responder

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	maxHistory int
	now        func() time.Time
}

func New(store statex.Store, responder contractx.Responder, cfg Config) (*Service, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if responder == nil {
		return nil, errors.New("responder is required")
	}

	maxHistory := cfg.MaxHistoryMessages
	switch {
	case maxHistory <= 0:
		maxHistory = defaultMaxHistoryMessages
	case maxHistory < minHistoryMessages:
		maxHistory = minHistoryMessages
	}

	s := &Service{
		store:      store,
		responder:  responder,
		maxHistory: maxHistory,
		now:        time.Now,
	}

	graphRunner, err := s.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// HandleMessage appends text to the thread, runs the assistant over the whole
// history and returns its reply.
func (s *Service) HandleMessage(ctx context.Context, threadID string, text string) (string, error) {
	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		ThreadID: threadID,
		Text:     text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}

// Reset forgets a thread's history.
func (s *Service) Reset(ctx context.Context, threadID string) error {
	return s.store.Delete(ctx, threadID)
}
