package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlashcards(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain array", `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`, 2},
		{"fenced", "Here you go:\n```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```", 1},
		{"flashcards key", `{"flashcards":[{"front":"F","back":"B"}]}`, 1},
		{"cards key", `{"cards":[{"question":"Q","answer":"A"}]}`, 1},
		{"questions key with trailing comma", "{\"questions\": [\n{\"question\":\"Q\",\"answer\":\"A\"},\n]}", 1},
		{"skips incomplete", `[{"question":"Q"},{"question":"Q2","answer":"A2"}]`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseFlashcards(tt.input)
			require.NoError(t, err)
			assert.Len(t, cards, tt.want)
		})
	}
}

func TestParseFlashcardsMalformed(t *testing.T) {
	for _, input := range []string{
		"I cannot help with that.",
		`{"items":[{"question":"Q","answer":"A"}]}`,
		`[{"question": "Q", "answer": }]`,
		`[]`,
	} {
		_, err := ParseFlashcards(input)
		assert.ErrorIs(t, err, ErrMalformedOutput, "input %q", input)
	}
}

func TestExtractJSONStripsComments(t *testing.T) {
	raw := ExtractJSON("```json\n{\n  \"url\": \"http://example.com\", // link\n  \"n\": 1,\n}\n```")
	assert.Equal(t, "{\n  \"url\": \"http://example.com\",\n  \"n\": 1}", raw)
}
