package services

import (
	"fmt"
	"strconv"
	"strings"

	"thesis-hand/models"
)

const (
	unknownAuthor = "Unknown Author"
	noDate        = "n.d."
	untitled      = "Untitled"
)

// NormalizeStyle bildet unbekannte oder leere Stile auf APA ab.
func NormalizeStyle(style string) string {
	switch s := strings.ToLower(strings.TrimSpace(style)); s {
	case models.CitationStyleAPA, models.CitationStyleMLA, models.CitationStyleChicago:
		return s
	default:
		return models.CitationStyleAPA
	}
}

// FormatCitation rendert einen Literatureintrag im gewünschten Stil.
//
//	apa:     Doe, J. (2024). Title. Journal
//	mla:     Doe, J. "Title." Journal, 2024.
//	chicago: Doe, J. "Title." Journal (2024).
func FormatCitation(ref models.Reference, style string) string {
	authors := joinAuthors(ref.Authors)
	year := noDate
	if ref.Year != nil && *ref.Year > 0 {
		year = strconv.Itoa(*ref.Year)
	}
	title := strings.TrimSpace(ref.Title)
	if title == "" {
		title = untitled
	}
	source := strings.TrimSpace(ref.Source)

	switch NormalizeStyle(style) {
	case models.CitationStyleMLA:
		return fmt.Sprintf(`%s. "%s." %s, %s.`, authors, title, source, year)
	case models.CitationStyleChicago:
		return fmt.Sprintf(`%s. "%s." %s (%s).`, authors, title, source, year)
	default:
		return fmt.Sprintf("%s (%s). %s. %s", authors, year, title, source)
	}
}

// ExportReferences rendert alle Einträge und trennt sie durch eine Leerzeile.
func ExportReferences(refs []models.Reference, style string) string {
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, FormatCitation(r, style))
	}
	return strings.Join(parts, "\n\n")
}

func joinAuthors(authors []string) string {
	kept := make([]string, 0, len(authors))
	for _, a := range authors {
		if a = strings.TrimSpace(a); a != "" {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		return unknownAuthor
	}
	return strings.Join(kept, ", ")
}
