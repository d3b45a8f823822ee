package services

import (
	"testing"

	"thesis-hand/models"

	"github.com/stretchr/testify/assert"
)

func ref(authors []string, year int, title, source string) models.Reference {
	r := models.Reference{Title: title, Source: source, Authors: authors}
	if year > 0 {
		r.Year = &year
	}
	return r
}

func TestFormatCitationStyles(t *testing.T) {
	r := ref([]string{"Doe, J."}, 2024, "Title", "Journal")

	assert.Equal(t, "Doe, J. (2024). Title. Journal", FormatCitation(r, "apa"))
	assert.Equal(t, `Doe, J.. "Title." Journal, 2024.`, FormatCitation(r, "mla"))
	assert.Equal(t, `Doe, J.. "Title." Journal (2024).`, FormatCitation(r, "chicago"))
	assert.Equal(t, FormatCitation(r, "apa"), FormatCitation(r, "harvard"))
	assert.Equal(t, FormatCitation(r, "apa"), FormatCitation(r, " APA "))
}

func TestFormatCitationDefaults(t *testing.T) {
	r := ref(nil, 0, "", "")
	assert.Equal(t, "Unknown Author (n.d.). Untitled. ", FormatCitation(r, "apa"))

	r = ref([]string{"Doe, J.", " ", "Roe, R."}, 1999, "T", "S")
	assert.Equal(t, "Doe, J., Roe, R. (1999). T. S", FormatCitation(r, "apa"))
}

func TestExportReferencesJoinsWithBlankLine(t *testing.T) {
	refs := []models.Reference{
		ref([]string{"A"}, 2020, "One", "J1"),
		ref([]string{"B"}, 2021, "Two", "J2"),
	}
	assert.Equal(t, "A (2020). One. J1\n\nB (2021). Two. J2", ExportReferences(refs, "apa"))
	assert.Equal(t, "", ExportReferences(nil, "apa"))
}

func TestCitedSourcesOrder(t *testing.T) {
	docs := []models.Document{
		{Model: models.Model{ID: "d1"}, Title: "First"},
		{Model: models.Model{ID: "d2"}, Title: "Second"},
	}
	text := "As shown [2], and again [2] and also [1]. See [7]."

	assert.Equal(t, []int{2, 1, 7}, ParseCitationOrder(text))
	sources := CitedSources(text, docs)
	if assert.Len(t, sources, 2) {
		assert.Equal(t, "d2", sources[0].DocumentID)
		assert.Equal(t, 1, sources[1].Number)
	}
	assert.Empty(t, CitedSources("no markers", docs))
}
