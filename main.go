package main

import (
	"fmt"
	"log"
	"time"

	"liturgi/internal/liturgi"
	"liturgi/internal/mapping"
	"liturgi/internal/schedule"
)

// Convenience entry: generate the upcoming Sunday's document with defaults.
func main() {

	date := nextSunday(time.Now())
	templateFile := "template.docx"

	opts := liturgi.Options{
		Source: schedule.Source{
			Path:       "Jadwal Liturgi.xlsx",
			Sheet:      "LITURGI INDUK",
			DateColumn: "Tanggal",
		},
		Mappings:   mapping.Default(),
		OutputDir:  ".",
		NamePrefix: "Liturgi",
	}

	outPath, err := liturgi.Generate(opts, date, templateFile)
	if err != nil {
		log.Fatal("Error generating document:", err)
	}

	fmt.Println("✓ Document generated successfully!")
	fmt.Printf("✓ Check '%s' to see the result\n", outPath)
}

func nextSunday(now time.Time) time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
