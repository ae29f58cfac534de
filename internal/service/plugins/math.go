package plugins

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/sandevgo/scribe/internal/core"
)

const MathPluginName = "math"

type MathPlugin struct{}

func NewMathPlugin() *MathPlugin { return &MathPlugin{} }

func (p *MathPlugin) Name() string { return MathPluginName }

func (p *MathPlugin) Description() string {
	return "Evaluate mathematical expressions"
}

func (p *MathPlugin) Keywords() []string {
	return []string{
		"calculate", "solve", "math", "compute",
		"add", "subtract", "multiply", "divide",
		"+", "-", "*", "/", "=", "equation",
	}
}

func (p *MathPlugin) ExtractParams(message string) map[string]string {
	if e := ExtractExpression(message); e != "" {
		return map[string]string{"expression": e}
	}
	return nil
}

func (p *MathPlugin) Execute(_ context.Context, params map[string]string) core.PluginResult {
	clean := sanitizeExpression(params["expression"])
	if clean == "" {
		return core.PluginResult{Success: false, Error: core.ErrInvalidExpression.Error()}
	}

	result, err := evaluate(clean)
	if err != nil {
		return core.PluginResult{
			Success: false,
			Error:   fmt.Sprintf("failed to evaluate expression: %v", err),
		}
	}

	steps := ""
	if strings.ContainsAny(clean, "+-*/") {
		steps = fmt.Sprintf("Evaluated: %s = %s", clean, formatNumber(result))
	}

	return core.PluginResult{
		Success: true,
		Data: map[string]any{
			"expression": clean,
			"result":     result,
			"steps":      steps,
		},
	}
}

// sanitizeExpression keeps only digits, whitespace, parentheses, the dot
// and the four basic operators.
func sanitizeExpression(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '*' || r == '/':
			b.WriteRune(r)
		case r == '(' || r == ')' || r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// evaluate runs the cleaned expression with standard operator precedence.
func evaluate(expression string) (float64, error) {
	out, err := expr.Eval(expression, nil)
	if err != nil {
		return 0, err
	}
	switch v := out.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("non-numeric result %T", out)
	}
}

// formatNumber prints integers without a decimal point.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
