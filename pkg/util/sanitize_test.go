package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "MainStore", "MainStore"},
		{"spaces become underscores", "Main Store", "Main_Store"},
		{"trims before replacing", "  Jane Doe  ", "Jane_Doe"},
		{"keeps hyphens and underscores", "Store-12_A", "Store-12_A"},
		{"drops punctuation", "Gramedia (Central) #3!", "Gramedia_Central_3"},
		{"drops slashes", "a/b\\c", "abc"},
		{"empty", "", ""},
		{"only punctuation", "!@#$%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestSanitizeNameIdempotent(t *testing.T) {
	inputs := []string{"Main Store", "  Jane Doe ", "Store-12_A", "Gramedia (Central)", ""}
	for _, in := range inputs {
		once := SanitizeName(in)
		assert.Equal(t, once, SanitizeName(once), "sanitizing %q twice changed the result", in)
	}
}
