package hymn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// refPattern matches song references as they appear in schedule cells,
// e.g. "KJ 460:1,2", "PKJ 13", "NKB 34 : 1-3", "KPPK 177".
var refPattern = regexp.MustCompile(`(?i)\b(KJ|PKJ|NKB|KPPK)\s*\.?\s*(\d+)\s*(?::\s*([0-9][0-9,\-\s]*))?`)

// Ref is a parsed song reference: hymn book, number, and optional verses.
type Ref struct {
	Book   string
	Number int
	Verses string
}

func (r Ref) String() string {
	if r.Verses == "" {
		return fmt.Sprintf("%s %d", r.Book, r.Number)
	}
	return fmt.Sprintf("%s %d:%s", r.Book, r.Number, r.Verses)
}

// ParseRefs extracts all song references from a schedule cell value.
func ParseRefs(cell string) []Ref {
	var refs []Ref
	for _, m := range refPattern.FindAllStringSubmatch(cell, -1) {
		number, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		verses := strings.Join(strings.Fields(m[3]), "")
		refs = append(refs, Ref{
			Book:   strings.ToUpper(m[1]),
			Number: number,
			Verses: verses,
		})
	}
	return refs
}
