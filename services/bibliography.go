package services

import (
	"regexp"
	"strconv"

	"thesis-hand/models"
)

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// SourceItem ist ein im generierten Text zitiertes Referenzdokument.
type SourceItem struct {
	Number     int    `json:"number"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Filename   string `json:"filename"`
}

// ParseCitationOrder liefert die eindeutigen [n]-Nummern in der Reihenfolge ihres ersten Auftretens.
func ParseCitationOrder(text string) []int {
	seen := map[int]bool{}
	order := []int{}
	for _, m := range citationMarker.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if !seen[n] {
			seen[n] = true
			order = append(order, n)
		}
	}
	return order
}

// CitedSources ordnet die Marker des Textes den nummerierten Kontextdokumenten zu (1-basiert).
// Marker ohne passendes Dokument werden ignoriert.
func CitedSources(text string, docs []models.Document) []SourceItem {
	sources := []SourceItem{}
	for _, n := range ParseCitationOrder(text) {
		if n > len(docs) {
			continue
		}
		d := docs[n-1]
		sources = append(sources, SourceItem{Number: n, DocumentID: d.ID, Title: d.Title, Filename: d.Filename})
	}
	return sources
}
