package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"thesis-hand/models"
	"thesis-hand/providers"
	"thesis-hand/storage"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"go.uber.org/zap"
)

// ErrGenerationFailed fasst alle Fehler des Providers zusammen. Details stehen nur im Log.
var (
	ErrGenerationFailed = errors.New("failed to generate content")
	ErrUnknownAction    = errors.New("unknown assist action")
)

const (
	DefaultFlashcardAmount = 5
	MaxFlashcardAmount     = 20
	MethodologyChapter     = "Methodology"
)

var htmlTagPattern = regexp.MustCompile(`(?i)<(h[1-6]|p|ul|ol|li|strong|em|br|div)[\s>/]`)

// AssistRequest ist eine Anfrage an den Schreibassistenten.
type AssistRequest struct {
	Action       string
	ChapterTitle string
	Content      string
	Prompt       string
	// Optional: nur diese Dokumente als Kontext, sonst alle der Thesis
	DocumentIDs []string
}

// AssistResult enthält den Modelltext und die darin zitierten Dokumente.
type AssistResult struct {
	Response string       `json:"response"`
	Sources  []SourceItem `json:"sources"`
}

// MethodologyResult verweist auf das überschriebene Kapitel.
type MethodologyResult struct {
	ChapterID string `json:"chapterId"`
	Content   string `json:"content"`
}

// Assistant verbindet die KI-Aktionen der Oberfläche mit genau einem Provider-Aufruf.
type Assistant struct {
	provider        providers.Provider
	store           *storage.Store
	logger          *zap.Logger
	docContextChars int
	converter       *md.Converter
}

// NewAssistant akzeptiert einen nil-Provider. Jede Aktion liefert dann providers.ErrNotConfigured.
func NewAssistant(provider providers.Provider, store *storage.Store, logger *zap.Logger, docContextChars int) *Assistant {
	return &Assistant{
		provider:        provider,
		store:           store,
		logger:          logger,
		docContextChars: docContextChars,
		converter:       md.NewConverter("", true, nil),
	}
}

// Configured meldet, ob ein Provider vorhanden ist.
func (a *Assistant) Configured() bool {
	return a.provider != nil
}

// ProviderName liefert den Namen des aktiven Providers oder "none".
func (a *Assistant) ProviderName() string {
	if a.provider == nil {
		return "none"
	}
	return a.provider.Name()
}

func (a *Assistant) generate(ctx context.Context, action, prompt, systemPrompt string) (string, error) {
	out, err := a.provider.Generate(ctx, prompt, systemPrompt)
	if err != nil {
		a.logger.Error("AI generation failed",
			zap.String("action", action),
			zap.String("provider", a.provider.Name()),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return out, nil
}

// Assist führt eine Schreibaktion aus. Dokumente der Thesis werden als nummerierter Kontext mitgeschickt.
func (a *Assistant) Assist(ctx context.Context, thesis *models.Thesis, req AssistRequest) (*AssistResult, error) {
	if !ValidAction(req.Action) {
		return nil, ErrUnknownAction
	}
	if a.provider == nil {
		return nil, providers.ErrNotConfigured
	}

	var (
		docs []models.Document
		err  error
	)
	if len(req.DocumentIDs) > 0 {
		docs, err = a.store.GetDocumentsByIDs(ctx, thesis.ID, req.DocumentIDs)
	} else {
		docs, err = a.store.ListDocumentsWithContent(ctx, thesis.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	system := AssistSystemPrompt(req.Action, BuildDocumentContext(docs, a.docContextChars))
	user := AssistUserPrompt(req.ChapterTitle, req.Content, req.Prompt)

	out, err := a.generate(ctx, req.Action, user, system)
	if err != nil {
		return nil, err
	}
	return &AssistResult{Response: out, Sources: CitedSources(out, docs)}, nil
}

// GenerateFlashcards erzeugt amount Karten aus dem Kapitelinhalt und speichert sie.
func (a *Assistant) GenerateFlashcards(ctx context.Context, thesis *models.Thesis, amount int, category string) ([]models.Flashcard, error) {
	if a.provider == nil {
		return nil, providers.ErrNotConfigured
	}
	if amount <= 0 {
		amount = DefaultFlashcardAmount
	}
	if amount > MaxFlashcardAmount {
		amount = MaxFlashcardAmount
	}
	if strings.TrimSpace(category) == "" {
		category = "general"
	}

	chapters, err := a.store.ListChapters(ctx, thesis.ID)
	if err != nil {
		return nil, fmt.Errorf("load chapters: %w", err)
	}

	out, err := a.generate(ctx, "flashcards", FlashcardPrompt(thesis, chapters, amount, category, a.docContextChars), flashcardSystemPrompt)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseFlashcards(out)
	if err != nil {
		a.logger.Error("Could not parse generated flashcards", zap.String("thesis_id", thesis.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(parsed) > amount {
		parsed = parsed[:amount]
	}

	cards := make([]models.Flashcard, 0, len(parsed))
	for _, p := range parsed {
		cards = append(cards, models.Flashcard{ThesisID: thesis.ID, Front: p.Front, Back: p.Back, Category: category})
	}
	if err := a.store.CreateFlashcards(ctx, cards); err != nil {
		return nil, fmt.Errorf("save flashcards: %w", err)
	}
	a.logger.Info("Flashcards generated", zap.String("thesis_id", thesis.ID), zap.Int("count", len(cards)))
	return cards, nil
}

// GenerateMethodology schreibt eine Gliederung in das Kapitel "Methodology" (wird bei Bedarf angelegt)
// und merkt sich die Auswahl an der Thesis.
func (a *Assistant) GenerateMethodology(ctx context.Context, thesis *models.Thesis, methodologyType, specific string) (*MethodologyResult, error) {
	if a.provider == nil {
		return nil, providers.ErrNotConfigured
	}

	out, err := a.generate(ctx, "methodology", MethodologyPrompt(thesis, methodologyType, specific), methodologySystemPrompt)
	if err != nil {
		return nil, err
	}
	content := a.toMarkdown(out)

	chapter, err := a.store.FindChapterByTitle(ctx, thesis.ID, MethodologyChapter)
	if errors.Is(err, storage.ErrNotFound) {
		chapter = &models.Chapter{ThesisID: thesis.ID, Title: MethodologyChapter}
		err = a.store.CreateChapter(ctx, chapter)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve methodology chapter: %w", err)
	}

	chapter, err = a.store.UpdateChapter(ctx, thesis.ID, chapter.ID, map[string]interface{}{
		"content":    content,
		"word_count": CountWords(content),
	})
	if err != nil {
		return nil, fmt.Errorf("save methodology chapter: %w", err)
	}
	if _, err := a.store.UpdateThesis(ctx, thesis.ID, map[string]interface{}{
		"methodology_type":     methodologyType,
		"specific_methodology": specific,
	}); err != nil {
		return nil, fmt.Errorf("save methodology selection: %w", err)
	}
	return &MethodologyResult{ChapterID: chapter.ID, Content: chapter.Content}, nil
}

// toMarkdown konvertiert HTML-Antworten nach Markdown und entfernt umschließende Codeblöcke.
func (a *Assistant) toMarkdown(out string) string {
	text := strings.TrimSpace(out)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```markdown")
		text = strings.TrimPrefix(text, "```html")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if htmlTagPattern.MatchString(text) {
		converted, err := a.converter.ConvertString(text)
		if err != nil {
			a.logger.Warn("HTML to Markdown conversion failed, keeping raw output", zap.Error(err))
			return text
		}
		return strings.TrimSpace(converted)
	}
	return text
}
