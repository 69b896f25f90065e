package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	assistantx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/assistant"
	"github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/catalog"
	contractx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/conversation"
	promptx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/prompt"
	statex "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/state"
	toolx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/agent/tool"
	configx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/config"
	"github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/openaicompat"
	"github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/postgres"
	qstashx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/qstash"
	"github.com/uptrace/bun"
)

// openCatalog connects to Postgres and returns the catalog repository. The
// caller owns the returned DB.
func openCatalog(ctx context.Context) (*bun.DB, *catalog.Repository, error) {
	dbCfg, err := configx.New[postgres.Config]("DATABASE")
	if err != nil {
		return nil, nil, err
	}

	db, err := postgres.Open(ctx, *dbCfg)
	if err != nil {
		return nil, nil, err
	}

	repo, err := catalog.NewRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}

func newOrderNotifier() (contractx.OrderNotifier, error) {
	cfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		log.Debug().Msg("qstash not configured, order events disabled")
		return nil, nil
	}

	client, err := qstashx.NewClient(*cfg)
	if err != nil {
		return nil, fmt.Errorf("init qstash client: %w", err)
	}
	notifier, err := toolx.NewQStashNotifier(client, cfg.Destination)
	if err != nil {
		return nil, err
	}
	log.Info().Str("destination", cfg.Destination).Msg("order events enabled")
	return notifier, nil
}

func newThreadStore() (statex.Store, error) {
	cfg, err := configx.New[statex.UpstashRedisConfig]("UPSTASH_REDIS")
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return statex.NewMemoryStore(), nil
	}

	store, err := statex.NewUpstashRedisStore(*cfg)
	if err != nil {
		return nil, fmt.Errorf("init upstash redis store: %w", err)
	}
	log.Info().Msg("thread history stored in upstash redis")
	return store, nil
}

func newResponder(ctx context.Context, catalogRepo contractx.Catalog) (contractx.Responder, error) {
	llmCfg, err := configx.New[openaicompat.Config]("LLM")
	if err != nil {
		return nil, err
	}
	agentCfg, err := configx.New[assistantx.Config]("AGENT")
	if err != nil {
		return nil, err
	}

	if !llmCfg.SkipProbe {
		client := openaicompat.NewClient(*llmCfg)
		if err := openaicompat.Probe(ctx, client, llmCfg.Model); err != nil {
			return nil, err
		}
	}

	chatModel, err := llmCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	notifier, err := newOrderNotifier()
	if err != nil {
		return nil, err
	}
	tools, err := toolx.BuildSalesTools(catalogRepo, notifier)
	if err != nil {
		return nil, err
	}

	prompts, err := promptx.LoadPromptSetWithOverride(agentCfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("load prompt: %w", err)
	}

	a, err := assistantx.New(ctx, chatModel, tools, prompts.Sales, *agentCfg)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("base_url", llmCfg.BaseURL).
		Str("model", llmCfg.Model).
		Int("tools", len(tools)).
		Msg("assistant ready")
	return a, nil
}

func newConversation(ctx context.Context, catalogRepo contractx.Catalog) (*conversation.Service, error) {
	responder, err := newResponder(ctx, catalogRepo)
	if err != nil {
		return nil, err
	}
	store, err := newThreadStore()
	if err != nil {
		return nil, err
	}
	convCfg, err := configx.New[conversation.Config]("CONVERSATION")
	if err != nil {
		return nil, err
	}
	return conversation.New(store, responder, *convCfg)
}
