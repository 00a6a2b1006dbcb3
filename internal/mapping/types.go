package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"liturgi/internal/docprops"
	"liturgi/internal/logger"
	"liturgi/internal/schedule"
)

// Kind distinguishes the two OOXML property stores a column can map to.
type Kind string

const (
	KindCore   Kind = "core"
	KindCustom Kind = "custom"
)

// PropertyMapping links one schedule column to a document property.
type PropertyMapping struct {
	Column    string `json:"column"`
	Kind      Kind   `json:"kind"`
	Property  string `json:"property"`
	IsIgnored bool   `json:"is_ignored"`
}

// Config holds all column-to-property mappings
type Config struct {
	Mappings []PropertyMapping `json:"mappings"`
}

// Default returns the built-in mapping table for the liturgy schedule.
func Default() *Config {
	return &Config{Mappings: []PropertyMapping{
		{Column: "Tanggal", Kind: KindCustom, Property: "@TANGGAL"},
		{Column: "Nama Minggu", Kind: KindCore, Property: "subject"},
		{Column: "Warna Liturgi", Kind: KindCustom, Property: "@WARNA LITURGI"},
		{Column: "Tema", Kind: KindCore, Property: "title"},
		{Column: "Bacaan 1", Kind: KindCustom, Property: "@BACAAN 1"},
		{Column: "Antar Bacaan", Kind: KindCustom, Property: "@ANTAR BACAAN"},
		{Column: "Bacaan 2", Kind: KindCustom, Property: "@BACAAN 2"},
		{Column: "Bacaan Injil", Kind: KindCustom, Property: "@BACAAN INJIL"},
		{Column: "Pelayan Firman", Kind: KindCustom, Property: "@PELAYAN FIRMAN"},
		{Column: "Nyanyian Prosesi", Kind: KindCustom, Property: "@NYANYIAN_PROSESI"},
		{Column: "Nyanyian Pengakuan Dosa", Kind: KindCustom, Property: "@NYANYIAN_PENGAKUAN_DOSA"},
		{Column: "Nyanyian Berita Anugerah", Kind: KindCustom, Property: "@NYANYIAN_BERITA_ANUGERAH"},
		{Column: "Nyanyian Persembahan", Kind: KindCustom, Property: "@NYANYIAN_PERSEMBAHAN"},
		{Column: "Nyanyian Peneguhan", Kind: KindCustom, Property: "@NYANYIAN PENGUTUSAN"},
	}}
}

// SaveToFile saves the mapping configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create mapping directory: %v", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads mapping configuration from a JSON file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %v", path, err)
	}
	return &config, nil
}

// LoadOrDefault loads the mapping file if it exists, falling back to the
// built-in table.
func LoadOrDefault(path string) *Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("No mapping file, using built-in table", "path", path)
		return Default()
	}
	config, err := LoadFromFile(path)
	if err != nil {
		logger.Warn("Failed to load mapping file, using built-in table", "path", path, "error", err)
		return Default()
	}
	logger.Info("Loaded mapping file", "path", path, "mappings", len(config.Mappings))
	return config
}

// Lookup returns the mapping for a column, if any.
func (c *Config) Lookup(column string) (PropertyMapping, bool) {
	for _, m := range c.Mappings {
		if m.Column == column {
			return m, true
		}
	}
	return PropertyMapping{}, false
}

// Set records a mapping for a column, replacing any existing entry.
func (c *Config) Set(column string, kind Kind, property string) {
	for i, m := range c.Mappings {
		if m.Column == column {
			c.Mappings[i] = PropertyMapping{Column: column, Kind: kind, Property: property}
			return
		}
	}
	c.Mappings = append(c.Mappings, PropertyMapping{Column: column, Kind: kind, Property: property})
}

// Ignore marks a column as deliberately unmapped.
func (c *Config) Ignore(column string) {
	for i, m := range c.Mappings {
		if m.Column == column {
			c.Mappings[i] = PropertyMapping{Column: column, IsIgnored: true}
			return
		}
	}
	c.Mappings = append(c.Mappings, PropertyMapping{Column: column, IsIgnored: true})
}

// Clear removes any entry for a column.
func (c *Config) Clear(column string) {
	for i, m := range c.Mappings {
		if m.Column == column {
			c.Mappings = append(c.Mappings[:i], c.Mappings[i+1:]...)
			return
		}
	}
}

// Resolve applies the mapping table to a schedule row, producing the
// document properties to write. Columns absent from the row are skipped.
func (c *Config) Resolve(row schedule.Row) docprops.Properties {
	props := docprops.Properties{
		Core:   make(map[string]string),
		Custom: make(map[string]string),
	}
	for _, m := range c.Mappings {
		if m.IsIgnored {
			continue
		}
		value, ok := row[m.Column]
		if !ok {
			continue
		}
		switch m.Kind {
		case KindCore:
			props.Core[m.Property] = value
		case KindCustom:
			props.Custom[m.Property] = value
		}
	}
	return props
}
