// Package liturgi wires the schedule lookup, mapping table, and document
// property writer into the generate pipeline.
package liturgi

import (
	"fmt"
	"path/filepath"
	"time"

	"liturgi/internal/docprops"
	"liturgi/internal/logger"
	"liturgi/internal/mapping"
	"liturgi/internal/schedule"
)

// Options holds everything the pipeline needs besides the date and template.
type Options struct {
	Source     schedule.Source
	Mappings   *mapping.Config
	OutputDir  string
	NamePrefix string
}

// OutputName derives the output filename for a date, e.g. "Liturgi 2024-03-10.docx".
func OutputName(prefix string, date time.Time) string {
	return fmt.Sprintf("%s %s.docx", prefix, date.Format("2006-01-02"))
}

// Preview resolves the schedule row for a date and the document properties
// that Generate would write, without touching any file.
func Preview(opts Options, date time.Time) (docprops.Properties, schedule.Row, error) {
	row, err := opts.Source.Lookup(date)
	if err != nil {
		return docprops.Properties{}, nil, err
	}
	return opts.Mappings.Resolve(row), row, nil
}

// Generate produces the dated output document from the template and returns
// its path. No file is written when the lookup fails.
func Generate(opts Options, date time.Time, templatePath string) (string, error) {
	props, _, err := Preview(opts, date)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(opts.OutputDir, OutputName(opts.NamePrefix, date))
	if err := docprops.Apply(templatePath, outPath, props); err != nil {
		return "", err
	}

	logger.Info("Generated document",
		"date", date.Format("2006-01-02"),
		"template", templatePath,
		"output", outPath,
		"core_properties", len(props.Core),
		"custom_properties", len(props.Custom))
	return outPath, nil
}
