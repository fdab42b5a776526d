package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain amount", "12.5", "12.50"},
		{"negative amount", "-3.00", "-3.00"},
		{"whitespace trimmed", " 7.25 ", "7.25"},
		{"empty is zero", "", "0.00"},
		{"malformed is zero", "12,50", "0.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(ParseAmount(tc.input)))
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"integer", "3", 3},
		{"decimal notation", "2.0", 2},
		{"empty is zero", "", 0},
		{"malformed is zero", "two", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseCount(tc.input))
		})
	}
}
