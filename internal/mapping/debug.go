package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func saveAISuggestionsToFile(columns []string, suggestions []AISuggestion, err error) {
	debugDir := filepath.Join("logs", "ai_debug")
	os.MkdirAll(debugDir, 0755)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	debugFile := filepath.Join(debugDir, fmt.Sprintf("ai_suggestions_%s.txt", timestamp))

	file, fileErr := os.Create(debugFile)
	if fileErr != nil {
		return
	}
	defer file.Close()

	fmt.Fprintf(file, "AI Property Suggestions - %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "===========================================\n\n")

	fmt.Fprintf(file, "COLUMNS SENT TO AI (%d):\n", len(columns))
	for i, col := range columns {
		fmt.Fprintf(file, "%d. %s\n", i+1, col)
	}

	fmt.Fprintf(file, "\nAI RESPONSE:\n")
	if err != nil {
		fmt.Fprintf(file, "ERROR: %v\n", err)
	} else {
		fmt.Fprintf(file, "SUCCESS - %d suggestions:\n", len(suggestions))
		for i, s := range suggestions {
			fmt.Fprintf(file, "%d. '%s' → %s:%s (%.2f confidence)\n",
				i+1, s.Column, s.Kind, s.Property, s.Confidence)
		}
		if len(suggestions) == 0 {
			fmt.Fprintf(file, "No suggestions generated (all were NO_MATCH or low confidence)\n")
		}
	}

	fmt.Fprintf(file, "\n===========================================\n")
}

// Suggest runs the AI suggestion pass for the given columns and records the
// session under logs/ai_debug for later inspection.
func Suggest(apiKey string, columns []string) ([]AISuggestion, error) {
	mapper, err := NewAIMapper(apiKey)
	if err != nil {
		return nil, err
	}
	defer mapper.Close()

	suggestions, err := mapper.SuggestProperties(columns)
	saveAISuggestionsToFile(columns, suggestions, err)
	return suggestions, err
}
