package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/scribe/internal/core"
)

// DefaultSystemInstructions is the fixed preamble of every prompt.
const DefaultSystemInstructions = `You are an intelligent AI assistant with expertise in Markdown, blogging, and technical writing. You have access to relevant documentation and can execute plugins when needed.

Your responses should be:
- Helpful and informative
- Based on the provided context when available
- Natural and conversational
- Accurate and well-structured
- Professional yet friendly

When using plugin outputs, incorporate them naturally into your response. If you're asked about weather, provide the weather information clearly. If you're asked to calculate something, show the calculation and result.

Always be helpful and provide detailed, accurate information based on the context provided.`

// rawTranscriptTurns is how many trailing memory entries go into the prompt
// verbatim, on top of the two-line summary.
const rawTranscriptTurns = 4

// BuildPrompt assembles the prompt sections in fixed order: system
// instructions, memory summary, raw transcript, retrieved context, plugin
// outputs, user message. Deterministic for a given context.
func BuildPrompt(pc core.PromptContext) string {
	var sb strings.Builder

	sb.WriteString(pc.SystemInstructions)
	sb.WriteString("\n\n")

	if strings.TrimSpace(pc.MemorySummary) != "" {
		sb.WriteString("MEMORY SUMMARY (last 2):\n")
		sb.WriteString(pc.MemorySummary)
		sb.WriteString("\n\n")
	}

	if len(pc.Memory) > 0 {
		sb.WriteString("MEMORY CONTEXT:\n")
		sb.WriteString(formatMemory(pc.Memory))
		sb.WriteString("\n\n")
	}

	if len(pc.Context) > 0 {
		sb.WriteString("RELEVANT DOCUMENTATION:\n")
		for i, chunk := range pc.Context {
			sb.WriteString(fmt.Sprintf("[Chunk %d] %s\n", i+1, chunk))
		}
		sb.WriteString("\n")
	}

	if len(pc.Plugins) > 0 {
		sb.WriteString("PLUGIN OUTPUTS:\n")
		for _, plugin := range pc.Plugins {
			sb.WriteString(formatPluginResult(plugin))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("USER MESSAGE:\n")
	sb.WriteString(pc.UserMessage)

	return sb.String()
}

func formatMemory(memory []core.MemoryEntry) string {
	if len(memory) > rawTranscriptTurns {
		memory = memory[len(memory)-rawTranscriptTurns:]
	}
	lines := make([]string, 0, len(memory))
	for _, entry := range memory {
		lines = append(lines, entry.Role+": "+entry.Content)
	}
	return strings.Join(lines, "\n")
}

// formatPluginResult renders known plugin payload shapes specially and
// falls back to a JSON dump for anything else.
func formatPluginResult(plugin core.PluginResult) string {
	if !plugin.Success || plugin.Data == nil {
		if plugin.Error != "" {
			return "Error: " + plugin.Error + "\n"
		}
		return ""
	}

	data := plugin.Data
	if data["temperature"] != nil && data["location"] != nil {
		return fmt.Sprintf("Weather for %v: %v, %v, Humidity: %v, Wind: %v\n",
			data["location"], data["temperature"], data["condition"], data["humidity"], data["wind"])
	}

	if data["expression"] != nil && data["result"] != nil {
		line := fmt.Sprintf("Math calculation: %v = %v", data["expression"], formatResult(data["result"]))
		if steps, ok := data["steps"].(string); ok && steps != "" {
			line += fmt.Sprintf(" (%s)", steps)
		}
		return line + "\n"
	}

	dump, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v\n", data)
	}
	return string(dump) + "\n"
}

func formatResult(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}
