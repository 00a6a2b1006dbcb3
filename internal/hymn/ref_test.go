package hymn

import (
	"reflect"
	"testing"
)

func TestParseRefs(t *testing.T) {
	tests := []struct {
		cell     string
		expected []Ref
	}{
		{"KJ 460:1,2", []Ref{{Book: "KJ", Number: 460, Verses: "1,2"}}},
		{"PKJ 13", []Ref{{Book: "PKJ", Number: 13}}},
		{"NKB 34 : 1-3", []Ref{{Book: "NKB", Number: 34, Verses: "1-3"}}},
		{"kj. 21", []Ref{{Book: "KJ", Number: 21}}},
		{"KJ 10; PKJ 2:1", []Ref{{Book: "KJ", Number: 10}, {Book: "PKJ", Number: 2, Verses: "1"}}},
		{"KPPK 177:1, 3", []Ref{{Book: "KPPK", Number: 177, Verses: "1,3"}}},
		{"Mazmur 23", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := ParseRefs(tt.cell)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ParseRefs(%q) = %+v, expected %+v", tt.cell, got, tt.expected)
		}
	}
}

func TestRefString(t *testing.T) {
	if got := (Ref{Book: "KJ", Number: 460, Verses: "1,2"}).String(); got != "KJ 460:1,2" {
		t.Errorf("String() = %q", got)
	}
	if got := (Ref{Book: "PKJ", Number: 13}).String(); got != "PKJ 13" {
		t.Errorf("String() = %q", got)
	}
}
