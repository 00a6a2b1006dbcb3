package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"liturgi/internal/config"
	"liturgi/internal/hymn"
	"liturgi/internal/liturgi"
	"liturgi/internal/logger"
	"liturgi/internal/mapping"
	"liturgi/internal/schedule"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	cfg, err := config.LoadConfig("configs/config.toml")
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "generate":
		if len(os.Args) < 4 {
			fmt.Println("Error: generate command requires a date and a template path")
			fmt.Println("Usage: liturgi generate <YYYY-MM-DD> <template.docx>")
			return
		}
		runGenerate(cfg, os.Args[2], os.Args[3])
	case "show":
		if len(os.Args) < 3 {
			fmt.Println("Error: show command requires a date")
			fmt.Println("Usage: liturgi show <YYYY-MM-DD>")
			return
		}
		runShow(cfg, os.Args[2])
	case "hymns":
		if len(os.Args) < 3 {
			fmt.Println("Error: hymns command requires a date")
			fmt.Println("Usage: liturgi hymns <YYYY-MM-DD>")
			return
		}
		runHymns(cfg, os.Args[2])
	case "scan":
		runScan(cfg)
	case "map":
		runMap(cfg)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Liturgi - Liturgy Document Tool")
	fmt.Println("\nUsage:")
	fmt.Println("  liturgi generate <YYYY-MM-DD> <template.docx>  - Generate the dated liturgy document")
	fmt.Println("  liturgi show <YYYY-MM-DD>                      - Preview the properties for a date")
	fmt.Println("  liturgi hymns <YYYY-MM-DD>                     - Resolve the date's song references")
	fmt.Println("  liturgi scan                                   - List schedule columns and mapping status")
	fmt.Println("  liturgi map                                    - Open interactive mapping editor")
}

func scheduleSource(cfg *config.Config) schedule.Source {
	return schedule.Source{
		Path:       cfg.Schedule.File,
		Sheet:      cfg.Schedule.Sheet,
		DateColumn: cfg.Schedule.DateColumn,
	}
}

func pipelineOptions(cfg *config.Config) liturgi.Options {
	return liturgi.Options{
		Source:     scheduleSource(cfg),
		Mappings:   mapping.LoadOrDefault(cfg.Mapping.File),
		OutputDir:  cfg.Output.Directory,
		NamePrefix: cfg.Output.NamePrefix,
	}
}

func runGenerate(cfg *config.Config, dateStr, templatePath string) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting generate operation", "date", dateStr, "template", templatePath)

	outPath, err := liturgi.Generate(pipelineOptions(cfg), date, templatePath)
	if err != nil {
		logger.Error("Generate operation failed", "error", err)
		switch {
		case errors.Is(err, schedule.ErrDateNotFound):
			fmt.Printf("❌ No schedule row for %s in '%s'\n", dateStr, cfg.Schedule.File)
		case errors.Is(err, schedule.ErrBadSource):
			fmt.Printf("❌ Cannot read schedule: %v\n", err)
		default:
			fmt.Printf("❌ Error generating document: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("✓ Document saved to '%s'\n", outPath)
}

func runShow(cfg *config.Config, dateStr string) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	props, _, err := liturgi.Preview(pipelineOptions(cfg), date)
	if err != nil {
		logger.Error("Show operation failed", "error", err)
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Properties for %s:\n\n", dateStr)
	fmt.Println("Core:")
	for _, name := range sortedKeys(props.Core) {
		fmt.Printf("  %-12s %s\n", name, props.Core[name])
	}
	fmt.Println("Custom:")
	for _, name := range sortedKeys(props.Custom) {
		fmt.Printf("  %-28s %s\n", name, props.Custom[name])
	}
}

func runHymns(cfg *config.Config, dateStr string) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	row, err := scheduleSource(cfg).Lookup(date)
	if err != nil {
		logger.Error("Hymns operation failed", "error", err)
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	store, err := hymn.Open(cfg.Hymns.Database)
	if err != nil {
		logger.Error("Failed to open hymn catalog", "error", err)
		fmt.Printf("❌ Error opening hymn catalog: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if n, err := store.Count(ctx); err == nil && n == 0 {
		fmt.Printf("Warning: hymn catalog '%s' is empty\n", cfg.Hymns.Database)
	}

	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	found := 0
	for _, col := range columns {
		refs := hymn.ParseRefs(row[col])
		if len(refs) == 0 {
			continue
		}
		fmt.Printf("%s:\n", col)
		for _, ref := range refs {
			h, err := store.Get(ctx, ref.Book, ref.Number)
			if err != nil && !errors.Is(err, hymn.ErrHymnNotFound) {
				logger.Error("Hymn catalog lookup failed", "ref", ref.String(), "error", err)
			}
			line, ok := refLine(ref, h, err)
			fmt.Println(line)
			if ok {
				found++
			}
		}
	}

	logger.Info("Hymns operation completed", "date", dateStr, "resolved", found)
}

// refLine renders one reference for the hymns listing and reports whether
// the catalog resolved it. Lookup failures other than a missing entry are
// surfaced instead of being passed off as absent hymns.
func refLine(ref hymn.Ref, h *hymn.Hymn, err error) (string, bool) {
	switch {
	case errors.Is(err, hymn.ErrHymnNotFound):
		return fmt.Sprintf("  %-14s (not in catalog)", ref), false
	case err != nil:
		return fmt.Sprintf("  %-14s (catalog error: %v)", ref, err), false
	case h.SourceURL != "":
		return fmt.Sprintf("  %-14s %s — %s", ref, h.Title, h.SourceURL), true
	default:
		return fmt.Sprintf("  %-14s %s", ref, h.Title), true
	}
}

func runScan(cfg *config.Config) {
	logger.Info("Starting scan operation", "schedule", cfg.Schedule.File)
	fmt.Printf("\nScanning '%s' (sheet %q) for columns...\n\n", cfg.Schedule.File, cfg.Schedule.Sheet)

	headers, err := scheduleSource(cfg).Headers()
	if err != nil {
		logger.Error("Scan operation failed", "error", err)
		fmt.Printf("Error scanning schedule: %v\n", err)
		os.Exit(1)
	}

	mappings := mapping.LoadOrDefault(cfg.Mapping.File)
	mapped := 0
	for _, header := range headers {
		if header == "" {
			continue
		}
		if pm, ok := mappings.Lookup(header); ok {
			if pm.IsIgnored {
				fmt.Printf("  - %-28s (ignored)\n", header)
			} else {
				fmt.Printf("  ✓ %-28s → %s:%s\n", header, pm.Kind, pm.Property)
				mapped++
			}
		} else {
			fmt.Printf("  ? %-28s (unmapped)\n", header)
		}
	}

	fmt.Printf("\n✓ Scan completed: %d columns, %d mapped\n", len(headers), mapped)
}

func runMap(cfg *config.Config) {
	logger.Info("Starting mapping operation", "output_file", cfg.Mapping.File)

	headers, err := scheduleSource(cfg).Headers()
	if err != nil {
		logger.Error("Mapping operation failed", "error", err)
		fmt.Printf("Error reading schedule columns: %v\n", err)
		os.Exit(1)
	}

	columns := make([]string, 0, len(headers))
	for _, h := range headers {
		if h != "" {
			columns = append(columns, h)
		}
	}
	if len(columns) == 0 {
		fmt.Println("No columns found in the schedule sheet.")
		return
	}

	mappings := mapping.LoadOrDefault(cfg.Mapping.File)

	// Optional AI pass for columns the table doesn't cover yet.
	if apiKey := mapping.GetGeminiAPIKey(); apiKey != "" {
		var unmapped []string
		for _, col := range columns {
			if _, ok := mappings.Lookup(col); !ok {
				unmapped = append(unmapped, col)
			}
		}
		if len(unmapped) > 0 {
			fmt.Printf("Requesting AI suggestions for %d unmapped columns...\n", len(unmapped))
			suggestions, err := mapping.Suggest(apiKey, unmapped)
			if err != nil {
				logger.Warn("AI suggestion pass failed", "error", err)
				fmt.Printf("Warning: AI suggestions unavailable: %v\n", err)
			}
			for _, s := range suggestions {
				mappings.Set(s.Column, s.Kind, s.Property)
			}
			if len(suggestions) > 0 {
				fmt.Printf("✓ Applied %d AI suggestions (review them in the editor)\n", len(suggestions))
			}
		}
	}

	uiConfig := mapping.UIConfig{RowsPerPage: cfg.UI.RowsPerPage}
	if err := mapping.RunMappingTUI(columns, mappings, cfg.Mapping.File, uiConfig); err != nil {
		logger.Error("Mapping operation failed", "error", err)
		fmt.Printf("Error running mapping tool: %v\n", err)
		os.Exit(1)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
