package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/unismart/unismart/internal/models"
)

const defaultModel = "gemini-2.5-flash"

const explainPrompt = `Ты помощник по выбору университетов. Анализируй факты и отвечай ТОЛЬКО JSON.
JSON структура:
{
    "summary": "2-3 предложения почему это хорошо",
    "key_factors": [
        {"factor": "название", "value": "описание", "contribution": 40}
    ],
    "explanation": "1-2 предложения",
    "strengths": ["сильная сторона 1", "сильная сторона 2"],
    "considerations": ["замечание 1"]
}
ТОЛЬКО JSON БЕЗ КОДА!

Верни JSON для этой программы:
{{FACTS_JSON}}

ВЕРНИ ТОЛЬКО JSON!`

// Gemini is an Explainer backed by the Gemini API. Any failure (network,
// empty response, unparseable JSON) is returned as an error; the ranking
// layer substitutes Fallback.
type Gemini struct {
	client    *genai.Client
	modelName string
}

// NewGemini creates a Gemini-backed explainer for the given API key
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Gemini{client: client, modelName: model}, nil
}

// Model returns the configured model name
func (g *Gemini) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// Explain implements Explainer
func (g *Gemini) Explain(ctx context.Context, facts Facts) (*models.Explanation, error) {
	factsJSON, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal facts: %w", err)
	}

	prompt := strings.ReplaceAll(explainPrompt, "{{FACTS_JSON}}", string(factsJSON))

	raw, err := g.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseExplanation(raw)
}

// GenerateContent sends a prompt to Gemini and returns the first textual
// response. Shared with the roadmap generator.
func (g *Gemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini explainer is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

// parseExplanation validates the model's JSON response. Key factors must be
// a list of objects; malformed entries are dropped rather than failing the
// whole bundle.
func parseExplanation(raw string) (*models.Explanation, error) {
	cleaned := ExtractJSON(raw)

	var data struct {
		Summary        string            `json:"summary"`
		KeyFactors     []json.RawMessage `json:"key_factors"`
		Explanation    string            `json:"explanation"`
		Strengths      []string          `json:"strengths"`
		Considerations []string          `json:"considerations"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	out := &models.Explanation{
		Summary:        strings.TrimSpace(data.Summary),
		KeyFactors:     []models.KeyFactor{},
		Explanation:    strings.TrimSpace(data.Explanation),
		Strengths:      data.Strengths,
		Considerations: data.Considerations,
	}
	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Considerations == nil {
		out.Considerations = []string{}
	}

	for _, rawFactor := range data.KeyFactors {
		var kf models.KeyFactor
		if err := json.Unmarshal(rawFactor, &kf); err != nil {
			continue
		}
		if kf.Factor == "" && kf.Value == "" {
			continue
		}
		out.KeyFactors = append(out.KeyFactors, kf)
	}

	return out, nil
}

// ExtractJSON strips markdown fences around a JSON payload. Models often
// wrap responses in ```json blocks despite instructions not to.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// Fall back to the outermost object if the model added prose
	if !strings.HasPrefix(raw, "{") {
		if start := strings.Index(raw, "{"); start != -1 {
			if end := strings.LastIndex(raw, "}"); end > start {
				raw = raw[start : end+1]
			}
		}
	}

	return raw
}
