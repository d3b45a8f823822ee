package services

import (
	"strings"
	"testing"

	"thesis-hand/models"

	"github.com/stretchr/testify/assert"
)

func TestAssistSystemPrompt(t *testing.T) {
	p := AssistSystemPrompt(ActionSummarize, "")
	assert.True(t, strings.HasPrefix(p, assistantBasePrompt))
	assert.Contains(t, p, "3-5 concise bullet points")

	assert.Contains(t, AssistSystemPrompt("unknown", ""), defaultInstruction)
	assert.True(t, strings.HasSuffix(AssistSystemPrompt(ActionOutline, "CTX"), "\n\nCTX"))
	assert.True(t, ValidAction(ActionGhostwrite))
	assert.False(t, ValidAction("translate"))
}

func TestAssistUserPromptEmptyContent(t *testing.T) {
	p := AssistUserPrompt("Intro", "  ", "make it better")
	assert.Equal(t, "Chapter: Intro\n\nContent:\n(empty)\n\nRequest: make it better", p)
}

func TestBuildDocumentContextTruncatesAndNumbers(t *testing.T) {
	docs := []models.Document{
		{Title: "Alpha", Filename: "a.pdf", Content: strings.Repeat("x", 20)},
		{Title: "Beta", Filename: "b.txt", Content: "short"},
	}
	ctx := BuildDocumentContext(docs, 10)

	assert.Contains(t, ctx, "REFERENCE DOCUMENTS")
	assert.Contains(t, ctx, "[1] Alpha (Filename: a.pdf):\n"+strings.Repeat("x", 10)+"...")
	assert.Contains(t, ctx, "[2] Beta (Filename: b.txt):\nshort")
	assert.Empty(t, BuildDocumentContext(nil, 10))
}

func TestMethodologyPromptUsesLabels(t *testing.T) {
	p := MethodologyPrompt(&models.Thesis{Title: "T"}, "mixed", "convergent")
	assert.Contains(t, p, "Mixed Methods")
	assert.Contains(t, p, "Convergent Parallel")
	assert.Equal(t, "custom", MethodologyLabel("custom"))
}
