package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/internal/ingest"
	"github.com/sandevgo/scribe/internal/providers/llm"
	"github.com/sandevgo/scribe/internal/providers/weather"
	"github.com/sandevgo/scribe/internal/service/agent"
	"github.com/sandevgo/scribe/internal/service/memory"
	"github.com/sandevgo/scribe/internal/service/plugins"
	"github.com/sandevgo/scribe/internal/storage/docstore"
	"github.com/sandevgo/scribe/internal/transport/api"
	"github.com/sandevgo/scribe/pkg/log"
	"github.com/sandevgo/scribe/pkg/srv"
)

// components bundles the wired pipeline so both the server and the one-shot
// ask command can reuse it.
type components struct {
	appCfg   *config.AppConfig
	agent    *agent.Agent
	memory   *memory.Memory
	store    *docstore.Store
	registry *plugins.Registry
	llm      *llm.Client
}

func NewServices(ctx context.Context) []srv.Service {
	c := buildComponents(ctx)

	server := api.NewServer(c.appCfg, c.agent, c.memory, c.store, c.registry)
	return []srv.Service{server, srv.NewCleanup(c.llm.Close)}
}

func buildComponents(ctx context.Context) *components {
	// init env
	initEnv(ctx)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	ragCfg := config.NewRAGConfig(ctx)
	memCfg := config.NewMemoryConfig(ctx)
	pluginsCfg := config.NewPluginsConfig(ctx)

	// 2. LLM provider (chat + embeddings)
	llmClient := llm.NewClient(llmCfg)

	// 3. Stores
	store := docstore.NewStore(llmClient)
	mem := memory.NewMemory(memCfg)

	// 4. Plugins
	registry := plugins.NewRegistry()
	if pluginsCfg.WeatherEnabled {
		weatherCfg := config.NewWeatherConfig(ctx)
		registry.Register(ctx, plugins.NewWeatherPlugin(weather.NewClient(weatherCfg)))
	}
	if pluginsCfg.MathEnabled {
		registry.Register(ctx, plugins.NewMathPlugin())
	}

	// 5. Agent
	ag := agent.NewAgent(ragCfg, llmClient, mem, store, registry)

	// 6. Document corpus
	loadCorpus(ctx, appCfg, ragCfg, store)

	return &components{
		appCfg:   appCfg,
		agent:    ag,
		memory:   mem,
		store:    store,
		registry: registry,
		llm:      llmClient,
	}
}

// loadCorpus indexes the markdown corpus at startup. A missing or broken
// corpus is not fatal: the agent still answers, just without retrieval.
func loadCorpus(ctx context.Context, appCfg *config.AppConfig, ragCfg *config.RAGConfig, store *docstore.Store) {
	logger := log.FromCtx(ctx)

	docs, err := ingest.LoadDirectory(ctx, appCfg.DocsPath, ingest.ChunkerConfig{
		MaxTokens:     ragCfg.ChunkMaxTokens,
		OverlapTokens: ragCfg.ChunkOverlapTokens,
	})
	if err != nil {
		logger.Warn().Err(err).Str("path", appCfg.DocsPath).Msg("failed to load document corpus")
		return
	}
	if len(docs) == 0 {
		logger.Warn().Str("path", appCfg.DocsPath).Msg("document corpus is empty")
		return
	}

	if err := store.AddDocuments(ctx, docs); err != nil {
		logger.Warn().Err(err).Msg("failed to index document corpus")
		return
	}
	logger.Info().Int("chunks", len(docs)).Msg("document corpus indexed")
}

func initEnv(ctx context.Context) {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(".env"); err != nil {
		return
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn().Err(err).Msg("failed to load .env file")
		return
	}
	logger.Debug().Msg("loaded .env file")
}
