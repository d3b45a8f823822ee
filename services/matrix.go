package services

import (
	"errors"
	"strings"

	"thesis-hand/models"
)

var (
	ErrEmptyColumn     = errors.New("column name must not be empty")
	ErrDuplicateColumn = errors.New("column already exists")
	ErrUnknownColumn   = errors.New("unknown matrix column")
)

// AddColumn hängt eine neue Spalte an. Namen werden getrimmt und müssen eindeutig sein.
// Bei einem Fehler bleibt die übergebene Liste unverändert.
func AddColumn(columns []string, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return columns, ErrEmptyColumn
	}
	for _, c := range columns {
		if c == name {
			return columns, ErrDuplicateColumn
		}
	}
	out := make([]string, 0, len(columns)+1)
	out = append(out, columns...)
	return append(out, name), nil
}

// RemoveColumn entfernt die Spalte und erhält die Reihenfolge der übrigen. Ein unbekannter Name ist kein Fehler.
func RemoveColumn(columns []string, name string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != name {
			out = append(out, c)
		}
	}
	return out
}

// ValidateColumns prüft eine komplett ersetzte Spaltenliste und liefert sie getrimmt zurück.
func ValidateColumns(columns []string) ([]string, error) {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		var err error
		if out, err = AddColumn(out, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SetCell schreibt eine Zelle. Ein leerer Wert entfernt den Schlüssel.
func SetCell(cells map[string]string, column, value string) map[string]string {
	out := make(map[string]string, len(cells)+1)
	for k, v := range cells {
		out[k] = v
	}
	if strings.TrimSpace(value) == "" {
		delete(out, column)
	} else {
		out[column] = value
	}
	return out
}

// HasColumn meldet, ob name zu den Spalten gehört.
func HasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// MatrixRow ist eine Zeile der Literaturmatrix.
type MatrixRow struct {
	ReferenceID string            `json:"referenceId"`
	Title       string            `json:"title"`
	Authors     []string          `json:"authors"`
	Year        *int              `json:"year"`
	Cells       map[string]string `json:"cells"`
}

// Matrix ist die vollständige Tabellenansicht.
type Matrix struct {
	Columns []string    `json:"columns"`
	Rows    []MatrixRow `json:"rows"`
}

// BuildMatrix rendert jede Spalte für jeden Eintrag. Fehlende Zellen sind "".
// Werte zu Spalten, die nicht mehr existieren, bleiben gespeichert, werden aber nicht angezeigt.
func BuildMatrix(columns []string, refs []models.Reference) Matrix {
	m := Matrix{Columns: append([]string{}, columns...), Rows: make([]MatrixRow, 0, len(refs))}
	for _, r := range refs {
		stored := r.Cells()
		cells := make(map[string]string, len(columns))
		for _, c := range columns {
			cells[c] = stored[c]
		}
		authors := []string(r.Authors)
		if authors == nil {
			authors = []string{}
		}
		m.Rows = append(m.Rows, MatrixRow{ReferenceID: r.ID, Title: r.Title, Authors: authors, Year: r.Year, Cells: cells})
	}
	return m
}
