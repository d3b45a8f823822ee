package services

import (
	"context"
	"errors"
	"testing"

	"thesis-hand/models"
	"thesis-hand/providers"
	"thesis-hand/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	reply  string
	err    error
	prompt string
	system string
	calls  int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	f.calls++
	f.prompt, f.system = prompt, systemPrompt
	return f.reply, f.err
}

func seed(t *testing.T, store *storage.Store) *models.Thesis {
	t.Helper()
	ctx := context.Background()
	u := &models.User{Email: "s@example.org", PasswordHash: "x"}
	require.NoError(t, store.CreateUser(ctx, u))
	th := &models.Thesis{UserID: u.ID, Title: "Sleep and Memory", Topic: "Neuroscience"}
	require.NoError(t, store.CreateThesis(ctx, th))
	return th
}

func TestAssistantNotConfigured(t *testing.T) {
	store := newTestStore(t)
	th := seed(t, store)
	a := NewAssistant(nil, store, zap.NewNop(), 1500)

	_, err := a.Assist(context.Background(), th, AssistRequest{Action: ActionOutline, ChapterTitle: "Intro", Prompt: "x"})
	assert.ErrorIs(t, err, providers.ErrNotConfigured)
	_, err = a.GenerateFlashcards(context.Background(), th, 5, "")
	assert.ErrorIs(t, err, providers.ErrNotConfigured)
	_, err = a.GenerateMethodology(context.Background(), th, "mixed", "convergent")
	assert.ErrorIs(t, err, providers.ErrNotConfigured)

	chapters, err := store.ListChapters(context.Background(), th.ID)
	require.NoError(t, err)
	assert.Empty(t, chapters)
	assert.Equal(t, "none", a.ProviderName())
}

func TestAssistIncludesDocumentsAndSources(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	th := seed(t, store)
	doc := &models.Document{ThesisID: th.ID, UserID: th.UserID, Title: "Walker 2017", Content: "Sleep consolidates memory.", Filename: "walker.pdf", MimeType: MimePDF}
	require.NoError(t, store.CreateDocument(ctx, doc))

	fp := &fakeProvider{reply: "Sleep matters [1]."}
	a := NewAssistant(fp, store, zap.NewNop(), 1500)

	res, err := a.Assist(ctx, th, AssistRequest{Action: ActionAcademic, ChapterTitle: "Intro", Content: "sleep good", Prompt: "rewrite"})
	require.NoError(t, err)
	assert.Equal(t, "Sleep matters [1].", res.Response)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, doc.ID, res.Sources[0].DocumentID)

	assert.Contains(t, fp.system, "formal academic tone")
	assert.Contains(t, fp.system, "[1] Walker 2017 (Filename: walker.pdf)")
	assert.Contains(t, fp.prompt, "Chapter: Intro")
	assert.Contains(t, fp.prompt, "Request: rewrite")
}

func TestAssistProviderFailureIsGeneric(t *testing.T) {
	store := newTestStore(t)
	th := seed(t, store)
	a := NewAssistant(&fakeProvider{err: errors.New("401 invalid api key")}, store, zap.NewNop(), 1500)

	_, err := a.Assist(context.Background(), th, AssistRequest{Action: ActionOutline, ChapterTitle: "x", Prompt: "y"})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateFlashcardsPersists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	th := seed(t, store)
	require.NoError(t, store.CreateChapter(ctx, &models.Chapter{ThesisID: th.ID, Title: "Intro", Content: "REM sleep."}))

	fp := &fakeProvider{reply: "```json\n{\"flashcards\": [{\"question\": \"What is REM?\", \"answer\": \"A sleep stage.\"}, {\"question\": \"Q2\", \"answer\": \"A2\"}, {\"question\": \"Q3\", \"answer\": \"A3\"}]}\n```"}
	a := NewAssistant(fp, store, zap.NewNop(), 1500)

	cards, err := a.GenerateFlashcards(ctx, th, 2, "methods")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.NotEmpty(t, cards[0].ID)
	assert.Contains(t, fp.prompt, "exactly 2 flashcards")
	assert.Contains(t, fp.prompt, "REM sleep.")

	stored, err := store.ListFlashcards(ctx, th.ID, "methods")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	fronts := []string{stored[0].Front, stored[1].Front}
	assert.ElementsMatch(t, []string{"What is REM?", "Q2"}, fronts)
}

func TestGenerateFlashcardsMalformed(t *testing.T) {
	store := newTestStore(t)
	th := seed(t, store)
	a := NewAssistant(&fakeProvider{reply: "Sorry, no."}, store, zap.NewNop(), 1500)

	_, err := a.GenerateFlashcards(context.Background(), th, 0, "")
	assert.ErrorIs(t, err, ErrGenerationFailed)

	cards, err := store.ListFlashcards(context.Background(), th.ID, "")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestGenerateMethodologyFindsOrCreatesChapter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	th := seed(t, store)

	fp := &fakeProvider{reply: "<h2>Research Design</h2><p>Convergent parallel design.</p>"}
	a := NewAssistant(fp, store, zap.NewNop(), 1500)

	res, err := a.GenerateMethodology(ctx, th, "mixed", "convergent")
	require.NoError(t, err)
	assert.Contains(t, res.Content, "## Research Design")
	assert.NotContains(t, res.Content, "<h2>")

	ch, err := store.GetChapter(ctx, th.ID, res.ChapterID)
	require.NoError(t, err)
	assert.Equal(t, MethodologyChapter, ch.Title)
	assert.Equal(t, CountWords(res.Content), ch.WordCount)

	fp.reply = "## Updated\n- point"
	again, err := a.GenerateMethodology(ctx, th, "qualitative", "case_study")
	require.NoError(t, err)
	assert.Equal(t, res.ChapterID, again.ChapterID)
	assert.Equal(t, "## Updated\n- point", again.Content)

	updated, err := store.GetThesis(ctx, th.ID)
	require.NoError(t, err)
	assert.Equal(t, "qualitative", updated.MethodologyType)
	assert.Equal(t, "case_study", updated.SpecificMethodology)
}

func TestAssistRejectsUnknownAction(t *testing.T) {
	store := newTestStore(t)
	th := seed(t, store)
	fp := &fakeProvider{reply: "x"}
	a := NewAssistant(fp, store, zap.NewNop(), 1500)

	_, err := a.Assist(context.Background(), th, AssistRequest{Action: "translate", ChapterTitle: "x"})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Zero(t, fp.calls)

	for _, action := range AssistActions {
		_, err := a.Assist(context.Background(), th, AssistRequest{Action: action, ChapterTitle: "x"})
		require.NoError(t, err, action)
	}
	assert.Equal(t, len(AssistActions), fp.calls)
}
