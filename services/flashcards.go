package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedOutput: die Modellantwort enthält kein verwertbares JSON.
var ErrMalformedOutput = errors.New("model returned malformed output")

// GeneratedCard ist ein vom Modell erzeugtes Frage/Antwort-Paar.
type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type rawCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Front    string `json:"front"`
	Back     string `json:"back"`
}

// ParseFlashcards liest ein JSON-Array von Karten. Akzeptiert werden Markdown-Codeblöcke,
// ein umschließendes Objekt mit den Schlüsseln flashcards, cards oder questions
// sowie die Feldpaare question/answer und front/back. Unvollständige Einträge werden übersprungen.
func ParseFlashcards(output string) ([]GeneratedCard, error) {
	raw := ExtractJSON(output)
	if raw == "" {
		return nil, ErrMalformedOutput
	}

	var items []rawCard
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		found := false
		for _, key := range []string{"flashcards", "cards", "questions"} {
			if v, ok := wrapper[key]; ok {
				if err := json.Unmarshal(v, &items); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
				}
				found = true
				break
			}
		}
		if !found {
			return nil, ErrMalformedOutput
		}
	} else if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	cards := make([]GeneratedCard, 0, len(items))
	for _, it := range items {
		front := strings.TrimSpace(firstNonEmpty(it.Question, it.Front))
		back := strings.TrimSpace(firstNonEmpty(it.Answer, it.Back))
		if front == "" || back == "" {
			continue
		}
		cards = append(cards, GeneratedCard{Front: front, Back: back})
	}
	if len(cards) == 0 {
		return nil, ErrMalformedOutput
	}
	return cards, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
