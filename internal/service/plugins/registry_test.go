package plugins

import (
	"context"
	"testing"

	"github.com/sandevgo/scribe/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWeatherClient struct {
	report core.WeatherReport
	err    error
}

func (s *stubWeatherClient) Lookup(_ context.Context, _ string) (core.WeatherReport, error) {
	return s.report, s.err
}

// echoPlugin is a minimal plugin for dispatch tests.
type echoPlugin struct {
	name     string
	keywords []string
	panics   bool
}

func (p *echoPlugin) Name() string        { return p.name }
func (p *echoPlugin) Description() string { return "echo" }
func (p *echoPlugin) Keywords() []string  { return p.keywords }

func (p *echoPlugin) Execute(_ context.Context, params map[string]string) core.PluginResult {
	if p.panics {
		panic("boom")
	}
	return core.PluginResult{Success: true, Data: map[string]any{"echo": p.name}}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	ctx := context.Background()
	r := NewRegistry()
	r.Register(ctx, NewWeatherPlugin(&stubWeatherClient{}))
	r.Register(ctx, NewMathPlugin())
	return r
}

func TestDetectIntent_WeatherQuery(t *testing.T) {
	r := NewRegistry()
	r.Register(context.Background(), NewWeatherPlugin(&stubWeatherClient{}))

	intent := r.DetectIntent("What's the weather in Paris?")

	assert.Equal(t, core.IntentWeatherQuery, intent.Type)
	assert.Equal(t, []string{"weather"}, intent.Plugins)
	assert.Equal(t, 0.8, intent.Confidence)
	assert.Equal(t, "Paris", intent.ExtractedParams["location"])
}

func TestDetectIntent_MathQuery(t *testing.T) {
	r := newTestRegistry(t)

	intent := r.DetectIntent("calculate 12 + 7")

	assert.Equal(t, core.IntentMathQuery, intent.Type)
	assert.Equal(t, []string{"math"}, intent.Plugins)
	assert.Equal(t, "12 + 7", intent.ExtractedParams["expression"])
}

func TestDetectIntent_WeatherOutranksMath(t *testing.T) {
	r := newTestRegistry(t)

	// Both plugins trigger; weather wins the type tie-break.
	intent := r.DetectIntent("calculate how hot it is in Oslo")

	assert.Equal(t, core.IntentWeatherQuery, intent.Type)
	assert.Equal(t, []string{"weather", "math"}, intent.Plugins)
}

func TestDetectIntent_GeneralKnowledge(t *testing.T) {
	r := newTestRegistry(t)

	intent := r.DetectIntent("tell me about markdown tables")

	assert.Equal(t, core.IntentGeneralKnowledge, intent.Type)
	assert.Empty(t, intent.Plugins)
	assert.Equal(t, 0.1, intent.Confidence)
}

func TestDetectIntent_OtherPluginRequest(t *testing.T) {
	r := NewRegistry()
	r.Register(context.Background(), &echoPlugin{name: "echo", keywords: []string{"repeat"}})

	intent := r.DetectIntent("please repeat after me")

	assert.Equal(t, core.IntentPluginRequest, intent.Type)
	assert.Equal(t, []string{"echo"}, intent.Plugins)
}

func TestDetectIntent_CaseInsensitive(t *testing.T) {
	r := newTestRegistry(t)

	intent := r.DetectIntent("WEATHER in Berlin")

	assert.Equal(t, core.IntentWeatherQuery, intent.Type)
}

func TestExecutePlugins_SkipsUnknown(t *testing.T) {
	r := newTestRegistry(t)

	results := r.ExecutePlugins(context.Background(), core.IntentDetection{
		Plugins:         []string{"ghost", "math"},
		ExtractedParams: map[string]string{"expression": "1 + 1"},
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
}

func TestExecutePlugins_PanicIsCaptured(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()
	r.Register(ctx, &echoPlugin{name: "bad", keywords: []string{"x"}, panics: true})
	r.Register(ctx, &echoPlugin{name: "good", keywords: []string{"x"}})

	results := r.ExecutePlugins(ctx, core.IntentDetection{Plugins: []string{"bad", "good"}})

	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)
	// A failing sibling must not abort the batch.
	assert.True(t, results[1].Success)
}

func TestExecutePlugins_ResultOrderMatchesIntent(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()
	r.Register(ctx, &echoPlugin{name: "one", keywords: []string{"a"}})
	r.Register(ctx, &echoPlugin{name: "two", keywords: []string{"b"}})

	results := r.ExecutePlugins(ctx, core.IntentDetection{Plugins: []string{"two", "one"}})

	require.Len(t, results, 2)
	assert.Equal(t, "two", results[0].Data["echo"])
	assert.Equal(t, "one", results[1].Data["echo"])
}
