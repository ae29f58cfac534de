// Package agent sequences the message pipeline: memory lookup, intent
// detection, plugin dispatch, conditional retrieval, prompt assembly,
// generation and memory bookkeeping.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/pkg/log"
)

type SessionMemory interface {
	GetSession(sessionID string) []core.MemoryEntry
	Summary(sessionID string) string
	AddMessage(ctx context.Context, sessionID, role, content string)
}

type DocumentSearcher interface {
	Search(ctx context.Context, query string, topK int, threshold float64) ([]core.SearchResult, error)
}

type Dispatcher interface {
	DetectIntent(message string) core.IntentDetection
	ExecutePlugins(ctx context.Context, intent core.IntentDetection) []core.PluginResult
}

type Agent struct {
	ragCfg     *config.RAGConfig
	generator  core.Generator
	memory     SessionMemory
	store      DocumentSearcher
	dispatcher Dispatcher
}

func NewAgent(
	ragCfg *config.RAGConfig,
	generator core.Generator,
	memory SessionMemory,
	store DocumentSearcher,
	dispatcher Dispatcher,
) *Agent {
	return &Agent{
		ragCfg:     ragCfg,
		generator:  generator,
		memory:     memory,
		store:      store,
		dispatcher: dispatcher,
	}
}

// Process runs the full pipeline for one message. It never fails at this
// boundary: pipeline errors degrade into an apology response so the
// transport always has something to return.
func (a *Agent) Process(ctx context.Context, msg core.Message) core.Response {
	started := time.Now()
	logger := log.FromCtx(ctx)
	logger.Info().Str("session", msg.SessionID).Msg("processing message")

	resp, err := a.process(ctx, msg)
	if err != nil {
		logger.Error().Err(err).Str("session", msg.SessionID).Msg("pipeline failed, returning degraded response")
		return core.Response{
			Response:      fmt.Sprintf("I apologize, but I encountered an error while processing your message: %v", err),
			SessionID:     msg.SessionID,
			ContextUsed:   []string{},
			PluginsCalled: []string{},
			Degraded:      true,
			Timestamp:     time.Now(),
		}
	}

	logger.Info().Dur("took", time.Since(started)).Str("session", msg.SessionID).Msg("message processed")
	return resp
}

func (a *Agent) process(ctx context.Context, msg core.Message) (core.Response, error) {
	memoryEntries := a.memory.GetSession(msg.SessionID)
	summary := a.memory.Summary(msg.SessionID)

	intent := a.dispatcher.DetectIntent(msg.Text)
	pluginResults := a.dispatcher.ExecutePlugins(ctx, intent)

	// Retrieval only when no plugin answers the request, or the intent is a
	// knowledge query anyway.
	contextChunks := []string{}
	if len(intent.Plugins) == 0 || intent.Type == core.IntentGeneralKnowledge {
		results, err := a.store.Search(ctx, msg.Text, a.ragCfg.TopK, a.ragCfg.SimilarityThreshold)
		if err != nil {
			return core.Response{}, fmt.Errorf("document search failed: %w", err)
		}
		for _, r := range results {
			contextChunks = append(contextChunks, r.Content)
		}
		log.FromCtx(ctx).Debug().Int("chunks", len(contextChunks)).Msg("retrieved context")
	}

	prompt := BuildPrompt(core.PromptContext{
		SystemInstructions: DefaultSystemInstructions,
		MemorySummary:      summary,
		Memory:             memoryEntries,
		Context:            contextChunks,
		Plugins:            pluginResults,
		UserMessage:        msg.Text,
	})

	generated, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return core.Response{}, fmt.Errorf("generation failed: %w", err)
	}

	a.memory.AddMessage(ctx, msg.SessionID, core.RoleUser, msg.Text)
	a.memory.AddMessage(ctx, msg.SessionID, core.RoleAssistant, generated)

	pluginsCalled := intent.Plugins
	if pluginsCalled == nil {
		pluginsCalled = []string{}
	}

	return core.Response{
		Response:      generated,
		SessionID:     msg.SessionID,
		ContextUsed:   contextChunks,
		PluginsCalled: pluginsCalled,
		Timestamp:     time.Now(),
	}, nil
}
