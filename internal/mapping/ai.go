package mapping

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"liturgi/internal/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AISuggestion represents an AI-suggested property mapping with confidence
type AISuggestion struct {
	Column     string  `json:"column"`
	Kind       Kind    `json:"kind"`
	Property   string  `json:"property"`
	Confidence float64 `json:"confidence"`
}

// AIMapper suggests document properties for unmapped schedule columns
type AIMapper struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewAIMapper creates a new AI mapper instance
func NewAIMapper(apiKey string) (*AIMapper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	logger.Info("Initializing AI mapper with Gemini API")

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	modelName := "gemini-2.0-flash-exp"
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent results

	logger.Info("AI mapper initialized", "model", modelName)

	return &AIMapper{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the AI mapper resources
func (ai *AIMapper) Close() error {
	if ai.client != nil {
		return ai.client.Close()
	}
	return nil
}

// SuggestProperties asks the model for property mappings for the given
// schedule columns. Low-confidence and NO_MATCH suggestions are dropped.
func (ai *AIMapper) SuggestProperties(columns []string) ([]AISuggestion, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to suggest properties for")
	}

	logger.Info("Requesting AI property suggestions", "column_count", len(columns))

	prompt := ai.buildSuggestionPrompt(columns)

	timeout := 60 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	type apiResult struct {
		resp *genai.GenerateContentResponse
		err  error
	}
	resultChan := make(chan apiResult, 1)
	start := time.Now()

	go func() {
		resp, err := ai.model.GenerateContent(ctx, genai.Text(prompt))
		resultChan <- apiResult{resp: resp, err: err}
	}()

	select {
	case result := <-resultChan:
		if result.err != nil {
			logger.Error("Gemini API request failed", "error", result.err, "duration", time.Since(start))
			return nil, fmt.Errorf("failed to generate AI response: %v", result.err)
		}
		logger.Info("Received response from Gemini API", "duration", time.Since(start))
		return ai.processAPIResponse(result.resp)

	case <-ctx.Done():
		logger.Error("Gemini API request timed out", "timeout", timeout)
		return nil, fmt.Errorf("API request timed out after %v", timeout)
	}
}

func (ai *AIMapper) processAPIResponse(resp *genai.GenerateContentResponse) ([]AISuggestion, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		logger.Error("No content in AI response")
		return nil, fmt.Errorf("no response generated from AI")
	}

	var responseText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			responseText += string(textPart)
		}
	}

	logger.Debug("AI response extracted", "length", len(responseText))
	return ai.parseSuggestionResponse(responseText)
}

// buildSuggestionPrompt creates a prompt asking for property names per column
func (ai *AIMapper) buildSuggestionPrompt(columns []string) string {
	prompt := `You are helping configure a tool that copies values from a church liturgy schedule spreadsheet into Word document properties.

TASK: For each spreadsheet column below, suggest the document property it should fill.

Core properties (standard Word metadata): title, subject, author, description, keywords, category.
Custom properties: uppercase names prefixed with "@", e.g. "@BACAAN 1" or "@NYANYIAN_PROSESI". Prefer custom properties unless the column is clearly the service theme (title), the Sunday name (subject), or the preacher (author).

SPREADSHEET COLUMNS:
`
	for _, col := range columns {
		prompt += fmt.Sprintf("- %s\n", col)
	}

	prompt += `
INSTRUCTIONS:
1. Only suggest mappings you are confident about (>80% certainty)
2. Consider the Indonesian liturgical meaning of each column name
3. If uncertain, use "NO_MATCH"

OUTPUT FORMAT (one line per column):
Column|Kind|Property|Confidence

where Kind is "core" or "custom".

EXAMPLES:
Tema|core|title|0.95
Bacaan 1|custom|@BACAAN 1|0.90
Catatan Internal|NO_MATCH|NO_MATCH|0.00

Now provide suggestions for the columns:`

	return prompt
}

// parseSuggestionResponse parses the AI response into structured suggestions
func (ai *AIMapper) parseSuggestionResponse(response string) ([]AISuggestion, error) {
	var suggestions []AISuggestion
	lines := strings.Split(strings.TrimSpace(response), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Column|") {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 4 {
			logger.Debug("Skipping malformed suggestion line", "content", line)
			continue
		}

		column := strings.TrimSpace(parts[0])
		kind := strings.ToLower(strings.TrimSpace(parts[1]))
		property := strings.TrimSpace(parts[2])

		var confidence float64
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[3]), "%f", &confidence); err != nil {
			confidence = 0.0
		}

		if property == "NO_MATCH" || kind == "no_match" {
			continue
		}
		if kind != string(KindCore) && kind != string(KindCustom) {
			logger.Debug("Skipping suggestion with unknown kind", "column", column, "kind", kind)
			continue
		}
		if confidence < 0.8 {
			logger.Debug("Skipping low confidence suggestion", "column", column, "confidence", confidence)
			continue
		}

		suggestions = append(suggestions, AISuggestion{
			Column:     column,
			Kind:       Kind(kind),
			Property:   property,
			Confidence: confidence,
		})
	}

	logger.Info("AI suggestions parsed", "count", len(suggestions))
	return suggestions, nil
}

// GetGeminiAPIKey gets the API key from environment variable
func GetGeminiAPIKey() string {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY environment variable not set")
	}
	return apiKey
}
