package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
)

type Config struct {
	MaxStep    int    `envconfig:"MAX_STEP" split_words:"true" default:"12"`
	PromptFile string `envconfig:"PROMPT_FILE" split_words:"true"`
}

const defaultMaxStep = 12

// Assistant is a tool-calling agent: the model may call the sales tools any
// number of times (bounded by MaxStep) before producing a final reply.
type Assistant struct {
	agent        *react.Agent
	systemPrompt string
}

var _ contractx.Responder = (*Assistant)(nil)

func New(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	tools []einotool.BaseTool,
	systemPrompt string,
	cfg Config,
) (*Assistant, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	systemPrompt = strings.TrimSpace(systemPrompt)
	if systemPrompt == "" {
		return nil, fmt.Errorf("%w: system prompt is empty", contractx.ErrValidation)
	}

	maxStep := cfg.MaxStep
	if maxStep <= 0 {
		maxStep = defaultMaxStep
	}

	a := &Assistant{systemPrompt: systemPrompt}

	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: tools,
		},
		MessageModifier: a.withSystemPrompt,
		MaxStep:         maxStep,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: build react agent: %v", contractx.ErrModelInvoke, err)
	}
	a.agent = agent

	return a, nil
}

// Respond runs the agent over the full thread history and returns its final
// message. Tool failures other than bad arguments surface here.
func (a *Assistant) Respond(ctx context.Context, history []*schema.Message) (*schema.Message, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: history is empty", contractx.ErrValidation)
	}

	msg, err := a.agent.Generate(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: agent returned no message", contractx.ErrValidation)
	}

	log.Debug().
		Int("history", len(history)).
		Int("reply_len", len(msg.Content)).
		Msg("assistant replied")
	return msg, nil
}

func (a *Assistant) withSystemPrompt(_ context.Context, input []*schema.Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(input)+1)
	out = append(out, schema.SystemMessage(a.systemPrompt))
	for _, m := range input {
		if m == nil || m.Role == schema.System {
			continue
		}
		out = append(out, m)
	}
	return out
}
