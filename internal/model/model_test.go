package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "short content", content: "hello", expected: "hello..."},
		{name: "exactly 100 chars", content: strings.Repeat("a", 100), expected: strings.Repeat("a", 100) + "..."},
		{name: "long content is cut at 100", content: strings.Repeat("b", 150), expected: strings.Repeat("b", 100) + "..."},
		{name: "empty content", content: "", expected: "..."},
		{name: "multibyte runes are not split", content: strings.Repeat("é", 120), expected: strings.Repeat("é", 100) + "..."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Excerpt(tc.content))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	testCases := []struct {
		name     string
		csv      string
		expected []string
	}{
		{name: "plain list", csv: "react,hooks", expected: []string{"react", "hooks"}},
		{name: "trims and lowercases", csv: " React , HOOKS ", expected: []string{"react", "hooks"}},
		{name: "drops empty entries", csv: "go,, ,rust", expected: []string{"go", "rust"}},
		{name: "empty string", csv: "", expected: nil},
		{name: "only separators", csv: ", ,", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeTags(tc.csv))
		})
	}
}
