package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"liturgi/internal/schedule"
)

func TestDefaultTable(t *testing.T) {
	config := Default()

	tests := []struct {
		column   string
		kind     Kind
		property string
	}{
		{"Tema", KindCore, "title"},
		{"Nama Minggu", KindCore, "subject"},
		{"Bacaan 1", KindCustom, "@BACAAN 1"},
		{"Nyanyian Prosesi", KindCustom, "@NYANYIAN_PROSESI"},
		{"Nyanyian Peneguhan", KindCustom, "@NYANYIAN PENGUTUSAN"},
	}

	for _, tt := range tests {
		pm, ok := config.Lookup(tt.column)
		if !ok {
			t.Errorf("Default table missing column %q", tt.column)
			continue
		}
		if pm.Kind != tt.kind || pm.Property != tt.property {
			t.Errorf("Default(%q) = %s:%s, expected %s:%s", tt.column, pm.Kind, pm.Property, tt.kind, tt.property)
		}
	}
}

func TestSetIgnoreClear(t *testing.T) {
	config := &Config{}

	config.Set("Pengkhotbah", KindCore, "author")
	pm, ok := config.Lookup("Pengkhotbah")
	if !ok || pm.Kind != KindCore || pm.Property != "author" {
		t.Fatalf("Set/Lookup mismatch: %+v (ok=%v)", pm, ok)
	}

	config.Set("Pengkhotbah", KindCustom, "@PENGKHOTBAH")
	if len(config.Mappings) != 1 {
		t.Errorf("Set should replace, got %d entries", len(config.Mappings))
	}

	config.Ignore("Pengkhotbah")
	pm, _ = config.Lookup("Pengkhotbah")
	if !pm.IsIgnored {
		t.Error("Ignore did not mark the column")
	}

	config.Clear("Pengkhotbah")
	if _, ok := config.Lookup("Pengkhotbah"); ok {
		t.Error("Clear did not remove the column")
	}
}

func TestResolve(t *testing.T) {
	config := Default()
	row := schedule.Row{
		"Tanggal":     "10 Maret 2024",
		"Tema":        "Kasih yang Memulihkan",
		"Nama Minggu": "Minggu Prapaskah IV",
		"Bacaan 1":    "Yosua 5:9-12",
		"Keterangan":  "internal note",
	}

	props := config.Resolve(row)

	if props.Core["title"] != "Kasih yang Memulihkan" {
		t.Errorf("title = %q", props.Core["title"])
	}
	if props.Core["subject"] != "Minggu Prapaskah IV" {
		t.Errorf("subject = %q", props.Core["subject"])
	}
	if props.Custom["@BACAAN 1"] != "Yosua 5:9-12" {
		t.Errorf("@BACAAN 1 = %q", props.Custom["@BACAAN 1"])
	}
	if props.Custom["@TANGGAL"] != "10 Maret 2024" {
		t.Errorf("@TANGGAL = %q", props.Custom["@TANGGAL"])
	}
	// Columns absent from the table are not written anywhere
	for _, v := range props.Core {
		if v == "internal note" {
			t.Error("Unmapped column leaked into core properties")
		}
	}
	for _, v := range props.Custom {
		if v == "internal note" {
			t.Error("Unmapped column leaked into custom properties")
		}
	}
}

func TestResolveIgnoredAndMissingColumns(t *testing.T) {
	config := &Config{}
	config.Set("Tema", KindCore, "title")
	config.Set("Bacaan 1", KindCustom, "@BACAAN 1")
	config.Ignore("Keterangan")

	row := schedule.Row{"Tema": "Tema Contoh", "Keterangan": "skip me"}
	props := config.Resolve(row)

	if props.Core["title"] != "Tema Contoh" {
		t.Errorf("title = %q", props.Core["title"])
	}
	if _, ok := props.Custom["@BACAAN 1"]; ok {
		t.Error("Column missing from row should not produce a property")
	}
	if len(props.Custom) != 0 {
		t.Errorf("Expected no custom properties, got %v", props.Custom)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "property_mapping.json")

	config := Default()
	config.Set("Pengkhotbah", KindCore, "author")
	if err := config.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if len(loaded.Mappings) != len(config.Mappings) {
		t.Fatalf("Round trip lost mappings: %d vs %d", len(loaded.Mappings), len(config.Mappings))
	}
	pm, ok := loaded.Lookup("Pengkhotbah")
	if !ok || pm.Kind != KindCore || pm.Property != "author" {
		t.Errorf("Round trip mismatch: %+v (ok=%v)", pm, ok)
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	config := LoadOrDefault(missing)
	if _, ok := config.Lookup("Tema"); !ok {
		t.Error("LoadOrDefault should fall back to the built-in table")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	config = LoadOrDefault(bad)
	if _, ok := config.Lookup("Tema"); !ok {
		t.Error("LoadOrDefault should fall back on parse errors")
	}
}

func TestParseSuggestionResponse(t *testing.T) {
	ai := &AIMapper{}

	response := `Column|Kind|Property|Confidence
Tema|core|title|0.95
Pengkhotbah|core|author|0.90
Bacaan 1|custom|@BACAAN 1|0.85
Catatan|NO_MATCH|NO_MATCH|0.00
Warna|custom|@WARNA|0.40
Aneh|weird|@ANEH|0.95
garbage line`

	suggestions, err := ai.parseSuggestionResponse(response)
	if err != nil {
		t.Fatalf("parseSuggestionResponse failed: %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("Expected 3 suggestions, got %d: %+v", len(suggestions), suggestions)
	}
	if suggestions[0].Column != "Tema" || suggestions[0].Kind != KindCore || suggestions[0].Property != "title" {
		t.Errorf("Unexpected first suggestion: %+v", suggestions[0])
	}
	if suggestions[2].Property != "@BACAAN 1" {
		t.Errorf("Unexpected third suggestion: %+v", suggestions[2])
	}
}

func TestDefaultCustomName(t *testing.T) {
	if got := defaultCustomName(" Nyanyian Syukur "); got != "@NYANYIAN SYUKUR" {
		t.Errorf("defaultCustomName = %q", got)
	}
}
