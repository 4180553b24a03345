package utils

import (
	"strings"
	"testing"
)

func TestNewClassCodeLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := NewClassCode()
		if err != nil {
			t.Fatalf("NewClassCode: %v", err)
		}
		if len(code) != ClassCodeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), ClassCodeLength)
		}
		for _, ch := range code {
			if !strings.ContainsRune(classCodeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
	}
}

func TestNewClassCodeAvoidsAmbiguousCharacters(t *testing.T) {
	for _, ch := range "0O1I" {
		if strings.ContainsRune(classCodeAlphabet, ch) {
			t.Errorf("alphabet contains ambiguous character %q", ch)
		}
	}
}
