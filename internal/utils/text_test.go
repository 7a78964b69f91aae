package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanUTF8(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		cleaned bool
	}{
		{name: "valid text", input: "Sea View Flat", want: "Sea View Flat"},
		{name: "accents are kept", input: "Résidence Côte", want: "Résidence Côte"},
		{name: "nul bytes", input: "Sea\x00 View", want: "Sea View", cleaned: true},
		{name: "invalid sequence", input: "Flat \xff\xfe", want: "Flat ", cleaned: true},
		{name: "control characters", input: "Two\x07 rooms\x1b", want: "Two rooms", cleaned: true},
		{name: "newlines and tabs are kept", input: "Line one\n\tLine two", want: "Line one\n\tLine two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cleaned := CleanUTF8(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cleaned, cleaned)
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Flat", CleanText("  Flat \xff\x00 "))
	assert.Equal(t, "", CleanText(" \x00 "))
}
