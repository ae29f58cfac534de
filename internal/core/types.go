package core

import "time"

const (
	ScribeName      = "Scribe"
	ScribeUserAgent = "Scribe-Agent/0.1"
	ScribeVersion   = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one incoming user message bound to a session.
type Message struct {
	Text      string `json:"message"`
	SessionID string `json:"session_id"`
}

// Response is what the pipeline returns for every message, degraded or not.
type Response struct {
	Response      string    `json:"response"`
	SessionID     string    `json:"session_id"`
	ContextUsed   []string  `json:"context_used"`
	PluginsCalled []string  `json:"plugins_called"`
	Degraded      bool      `json:"degraded,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// MemoryEntry is one turn in a session transcript. Entries are never mutated.
type MemoryEntry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// DocumentChunk is a bounded slice of source text with provenance.
type DocumentChunk struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SearchResult is one retrieval hit above the similarity threshold.
type SearchResult struct {
	Content    string         `json:"content"`
	Source     string         `json:"source"`
	Similarity float64        `json:"similarity"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type IntentType string

const (
	IntentGeneralKnowledge IntentType = "general_knowledge"
	IntentWeatherQuery     IntentType = "weather_query"
	IntentMathQuery        IntentType = "math_query"
	IntentPluginRequest    IntentType = "plugin_request"
)

// IntentDetection is derived per request and not persisted. Plugins holds
// triggered plugin names in registration order.
type IntentDetection struct {
	Type            IntentType        `json:"type"`
	Plugins         []string          `json:"plugins"`
	Confidence      float64           `json:"confidence"`
	ExtractedParams map[string]string `json:"extracted_params,omitempty"`
}

// PluginResult carries either Data (success) or Error (failure).
type PluginResult struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// PromptContext is the assembled input to one generation call.
type PromptContext struct {
	SystemInstructions string
	MemorySummary      string
	Memory             []MemoryEntry
	Context            []string
	Plugins            []PluginResult
	UserMessage        string
}

// WeatherReport is the normalized result of a weather lookup.
type WeatherReport struct {
	TemperatureC float64
	Condition    string
	Humidity     int
	WindKph      float64
	Location     string
}
