// Package plugins implements keyword-triggered intent detection and dispatch
// over a closed, statically registered set of capability plugins.
package plugins

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/scribe/internal/core"
	"github.com/sandevgo/scribe/pkg/log"
)

const (
	triggeredConfidence = 0.8
	fallbackConfidence  = 0.1
)

// ParamExtractor is implemented by plugins that can pull their own
// parameters out of the raw message. Extraction stays separate from
// dispatch so the rules can change without touching intent logic.
type ParamExtractor interface {
	ExtractParams(message string) map[string]string
}

// Registry holds plugins in registration order. Order is load-bearing:
// DetectIntent and ExecutePlugins results follow it.
type Registry struct {
	names   []string
	plugins map[string]core.Plugin
}

func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]core.Plugin)}
}

func (r *Registry) Register(ctx context.Context, p core.Plugin) {
	if _, exists := r.plugins[p.Name()]; !exists {
		r.names = append(r.names, p.Name())
	}
	r.plugins[p.Name()] = p
	log.FromCtx(ctx).Info().Str("plugin", p.Name()).Msg("registered plugin")
}

func (r *Registry) Get(name string) (core.Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// List returns all plugins in registration order.
func (r *Registry) List() []core.Plugin {
	out := make([]core.Plugin, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.plugins[name])
	}
	return out
}

// DetectIntent scans the message against every plugin's keyword list.
// A plugin triggers when any keyword appears as a case-insensitive
// substring. Intent type precedence when several trigger:
// weather > math > any other plugin > general_knowledge.
func (r *Registry) DetectIntent(message string) core.IntentDetection {
	lower := strings.ToLower(message)

	var triggered []string
	params := make(map[string]string)

	for _, name := range r.names {
		p := r.plugins[name]
		if !matchesKeyword(lower, p.Keywords()) {
			continue
		}
		triggered = append(triggered, name)

		if ex, ok := p.(ParamExtractor); ok {
			for k, v := range ex.ExtractParams(message) {
				params[k] = v
			}
		}
	}

	intentType := core.IntentGeneralKnowledge
	switch {
	case contains(triggered, WeatherPluginName):
		intentType = core.IntentWeatherQuery
	case contains(triggered, MathPluginName):
		intentType = core.IntentMathQuery
	case len(triggered) > 0:
		intentType = core.IntentPluginRequest
	}

	confidence := fallbackConfidence
	if len(triggered) > 0 {
		confidence = triggeredConfidence
	}

	return core.IntentDetection{
		Type:            intentType,
		Plugins:         triggered,
		Confidence:      confidence,
		ExtractedParams: params,
	}
}

// ExecutePlugins runs every plugin named by the intent, in order. Unknown
// names are skipped; a failing plugin yields a failed result instead of
// aborting the batch.
func (r *Registry) ExecutePlugins(ctx context.Context, intent core.IntentDetection) []core.PluginResult {
	results := make([]core.PluginResult, 0, len(intent.Plugins))
	for _, name := range intent.Plugins {
		p, ok := r.plugins[name]
		if !ok {
			continue
		}
		results = append(results, safeExecute(ctx, p, intent.ExtractedParams))
	}
	return results
}

func safeExecute(ctx context.Context, p core.Plugin, params map[string]string) (result core.PluginResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.FromCtx(ctx).Error().Str("plugin", p.Name()).Msgf("plugin panicked: %v", rec)
			result = core.PluginResult{
				Success: false,
				Error:   fmt.Sprintf("plugin execution failed: %v", rec),
			}
		}
	}()
	return p.Execute(ctx, params)
}

func matchesKeyword(lowerMessage string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerMessage, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
