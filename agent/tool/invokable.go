package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
)

// invokable adapts a typed function to eino's InvokableTool. Argument errors
// go back to the model as text so it can correct the call; every other error
// aborts the turn.
type invokable[T any] struct {
	info *schema.ToolInfo
	fn   func(ctx context.Context, args T) (string, error)
}

var _ einotool.InvokableTool = (*invokable[noArgs])(nil)

func newTool[T any](info *schema.ToolInfo, fn func(ctx context.Context, args T) (string, error)) einotool.InvokableTool {
	return &invokable[T]{info: info, fn: fn}
}

func (t *invokable[T]) Info(context.Context) (*schema.ToolInfo, error) {
	return t.info, nil
}

func (t *invokable[T]) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...einotool.Option) (string, error) {
	logger := log.With().Str("tool", t.info.Name).Logger()
	logger.Debug().Str("args", argumentsInJSON).Msg("tool call")

	out, err := t.run(ctx, argumentsInJSON)
	if err != nil {
		if errors.Is(err, contractx.ErrToolArgs) {
			logger.Warn().Err(err).Msg("tool rejected arguments")
			return "error: " + err.Error(), nil
		}
		logger.Error().Err(err).Msg("tool failed")
		return "", fmt.Errorf("tool=%s: %w", t.info.Name, err)
	}

	logger.Debug().Str("result", out).Msg("tool result")
	return out, nil
}

func (t *invokable[T]) run(ctx context.Context, argumentsInJSON string) (string, error) {
	args, err := decodeArgs[T](argumentsInJSON)
	if err != nil {
		return "", err
	}
	return t.fn(ctx, args)
}

func decodeArgs[T any](raw string) (T, error) {
	var args T
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return args, fmt.Errorf("%w: %v", contractx.ErrToolArgs, err)
	}
	return args, nil
}

// Number accepts a JSON number or a numeric string; small local models often
// quote numbers in tool arguments. Only finite decimal values are accepted.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || strings.ContainsAny(s, "xX") || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("not a finite number: %q", s)
		}
		*n = Number(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}
