package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/scribe/internal/config"
	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/internal/service/memory"
	"github.com/sandevgo/scribe/internal/service/plugins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyStore struct {
	searches int
	results  []core.SearchResult
	err      error
}

func (s *spyStore) Search(_ context.Context, _ string, _ int, _ float64) ([]core.SearchResult, error) {
	s.searches++
	return s.results, s.err
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func newTestAgent(t *testing.T, store *spyStore, gen *fakeGenerator) (*Agent, *memory.Memory) {
	t.Helper()
	ctx := context.Background()

	mem := memory.NewMemory(&config.MemoryConfig{MaxMessagesPerSession: 10, MaxSessions: 100})

	registry := plugins.NewRegistry()
	registry.Register(ctx, plugins.NewMathPlugin())

	ragCfg := &config.RAGConfig{TopK: 3, SimilarityThreshold: 0.7}
	return NewAgent(ragCfg, gen, mem, store, registry), mem
}

func TestProcess_PluginSkipsRetrieval(t *testing.T) {
	store := &spyStore{}
	gen := &fakeGenerator{response: "the answer is 19"}
	ag, _ := newTestAgent(t, store, gen)

	resp := ag.Process(context.Background(), core.Message{Text: "What is 12 + 7?", SessionID: "s1"})

	assert.Equal(t, 0, store.searches)
	assert.Equal(t, []string{"math"}, resp.PluginsCalled)
	assert.Empty(t, resp.ContextUsed)
	assert.Equal(t, "the answer is 19", resp.Response)
	assert.False(t, resp.Degraded)
}

func TestProcess_NoPluginSearchesOnce(t *testing.T) {
	store := &spyStore{results: []core.SearchResult{
		{Content: "markdown tables use pipes", Similarity: 0.9},
	}}
	gen := &fakeGenerator{response: "use pipes"}
	ag, _ := newTestAgent(t, store, gen)

	resp := ag.Process(context.Background(), core.Message{Text: "how do markdown tables work", SessionID: "s1"})

	assert.Equal(t, 1, store.searches)
	assert.Equal(t, []string{"markdown tables use pipes"}, resp.ContextUsed)
	assert.Empty(t, resp.PluginsCalled)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "RELEVANT DOCUMENTATION:")
	assert.Contains(t, gen.prompts[0], "[Chunk 1] markdown tables use pipes")
}

func TestProcess_GenerationFailureDegrades(t *testing.T) {
	store := &spyStore{}
	gen := &fakeGenerator{err: core.ErrGeneration}
	ag, mem := newTestAgent(t, store, gen)

	resp := ag.Process(context.Background(), core.Message{Text: "hello there", SessionID: "s1"})

	assert.True(t, resp.Degraded)
	assert.Contains(t, resp.Response, "I apologize")
	assert.Empty(t, resp.ContextUsed)
	assert.Empty(t, resp.PluginsCalled)
	assert.Equal(t, "s1", resp.SessionID)
	// Failed turns are not recorded.
	assert.Empty(t, mem.GetSession("s1"))
}

func TestProcess_SearchFailureDegrades(t *testing.T) {
	store := &spyStore{err: errors.New("embedder down")}
	gen := &fakeGenerator{response: "unused"}
	ag, _ := newTestAgent(t, store, gen)

	resp := ag.Process(context.Background(), core.Message{Text: "hello there", SessionID: "s1"})

	assert.True(t, resp.Degraded)
	assert.Contains(t, resp.Response, "embedder down")
	assert.Empty(t, gen.prompts)
}

func TestProcess_UpdatesMemoryInOrder(t *testing.T) {
	store := &spyStore{}
	gen := &fakeGenerator{response: "hi back"}
	ag, mem := newTestAgent(t, store, gen)

	ag.Process(context.Background(), core.Message{Text: "hello there", SessionID: "s1"})

	entries := mem.GetSession("s1")
	require.Len(t, entries, 2)
	assert.Equal(t, core.RoleUser, entries[0].Role)
	assert.Equal(t, "hello there", entries[0].Content)
	assert.Equal(t, core.RoleAssistant, entries[1].Role)
	assert.Equal(t, "hi back", entries[1].Content)
}

func TestProcess_SecondTurnCarriesMemory(t *testing.T) {
	store := &spyStore{}
	gen := &fakeGenerator{response: "sure"}
	ag, _ := newTestAgent(t, store, gen)
	ctx := context.Background()

	ag.Process(ctx, core.Message{Text: "my name is Ada", SessionID: "s1"})
	ag.Process(ctx, core.Message{Text: "what is my name", SessionID: "s1"})

	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[1], "MEMORY SUMMARY (last 2):")
	assert.Contains(t, gen.prompts[1], "user: my name is Ada | assistant: sure")
	assert.Contains(t, gen.prompts[1], "MEMORY CONTEXT:")
}
