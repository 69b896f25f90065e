package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrModelUnavailable is returned by Probe when the server does not serve the
// configured model.
var ErrModelUnavailable = errors.New("model is not served by the llm runtime")

type ChatModelBuilder interface {
	New(ctx context.Context) (model.ToolCallingChatModel, error)
}

var _ ChatModelBuilder = (*Config)(nil)

// Config describes an OpenAI-compatible chat completions endpoint, e.g. a
// local LM Studio or llama.cpp server.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"http://127.0.0.1:1234/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" default:"not-needed"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"deepseek-r1-distill-qwen-7b"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.2"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"120s"`
	SkipProbe          bool          `envconfig:"SKIP_PROBE" split_words:"true" default:"false"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("llm base url is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("llm model is required")
	}
	if c.Temperature < 0 {
		return fmt.Errorf("llm temperature must be >= 0, got %v", c.Temperature)
	}
	return nil
}

func (c *Config) New(ctx context.Context) (model.ToolCallingChatModel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	modelName := strings.TrimSpace(c.Model)

	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"),
		APIKey:      c.apiKey(),
		Model:       modelName,
		Temperature: &c.Temperature,
		Timeout:     c.Timeout,
	}
	if c.MaxCompletionToken > 0 {
		maxTokens := c.MaxCompletionToken
		conf.MaxTokens = &maxTokens
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("openaicompat: create chat model: %w", err)
	}

	return m, nil
}

// NewClient creates an OpenAI SDK client pointed at the configured server.
func NewClient(cfg Config) *openaisdk.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.apiKey()),
		option.WithMaxRetries(0),
	}

	if trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed+"/"))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}

// Probe lists the models served by the runtime and checks that the configured
// one is among them. Servers that return an empty list are accepted.
func Probe(ctx context.Context, client *openaisdk.Client, modelName string) error {
	if client == nil {
		return errors.New("openaicompat: nil client")
	}

	page, err := client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("openaicompat: list models: %w", err)
	}
	if page == nil || len(page.Data) == 0 {
		return nil
	}

	want := strings.TrimSpace(modelName)
	for _, m := range page.Data {
		if m.ID == want {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrModelUnavailable, want)
}

func (c Config) apiKey() string {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return "not-needed"
	}
	return key
}
