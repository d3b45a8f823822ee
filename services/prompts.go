package services

import (
	"fmt"
	"strings"

	"thesis-hand/models"
)

// Aktionen des Schreibassistenten.
const (
	ActionOutline    = "outline"
	ActionAcademic   = "academic"
	ActionSummarize  = "summarize"
	ActionStructure  = "structure"
	ActionHumanize   = "humanize"
	ActionGhostwrite = "ghostwrite"
)

// AssistActions listet die Aktionen in der Reihenfolge der Oberfläche.
var AssistActions = []string{ActionOutline, ActionAcademic, ActionSummarize, ActionStructure, ActionHumanize, ActionGhostwrite}

const assistantBasePrompt = "You are an academic writing assistant helping PhD and Master's students with their thesis. "

var actionInstructions = map[string]string{
	ActionOutline:    "Generate a detailed outline for the chapter. Include main sections, subsections, and key points to cover. Format as a structured outline.",
	ActionAcademic:   "Rewrite the provided text in a formal academic tone. Maintain the original meaning while improving clarity, precision, and scholarly language.",
	ActionSummarize:  "Summarize the content into 3-5 concise bullet points that capture the key ideas.",
	ActionStructure:  "Suggest the best structure for this section. Recommend how to organize the content, what subheadings to use, and how to improve the flow.",
	ActionHumanize:   "Rewrite the provided text so it sounds more natural and human. Vary sentence length, avoid formulaic phrasing and keep the academic substance intact.",
	ActionGhostwrite: "Write a comprehensive first draft for this chapter based on its title and any existing notes. Use clear academic prose with headings where appropriate.",
}

const defaultInstruction = "Provide helpful suggestions to improve the academic writing."

// ValidAction meldet, ob action eine bekannte Assistenten-Aktion ist.
func ValidAction(action string) bool {
	_, ok := actionInstructions[action]
	return ok
}

// AssistSystemPrompt setzt Basisanweisung, Aktionsanweisung und optionalen Dokumentkontext zusammen.
func AssistSystemPrompt(action, documentContext string) string {
	instruction, ok := actionInstructions[action]
	if !ok {
		instruction = defaultInstruction
	}
	prompt := assistantBasePrompt + instruction
	if documentContext != "" {
		prompt += "\n\n" + documentContext
	}
	return prompt
}

// AssistUserPrompt beschreibt Kapitel, aktuellen Inhalt und Anfrage.
func AssistUserPrompt(chapterTitle, content, request string) string {
	if strings.TrimSpace(content) == "" {
		content = "(empty)"
	}
	return fmt.Sprintf("Chapter: %s\n\nContent:\n%s\n\nRequest: %s", chapterTitle, content, request)
}

// BuildDocumentContext nummeriert die Dokumente ab 1 und kürzt jedes auf maxChars Zeichen.
func BuildDocumentContext(docs []models.Document, maxChars int) string {
	if len(docs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("REFERENCE DOCUMENTS:\n")
	b.WriteString("The user has provided the following documents as sources. ")
	b.WriteString("When you use information from them, cite the document by its number in square brackets, e.g. [1].\n\n")
	for i, d := range docs {
		fmt.Fprintf(&b, "[%d] %s (Filename: %s):\n%s\n\n", i+1, d.Title, d.Filename, truncateRunes(d.Content, maxChars))
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncateRunes kürzt auf maxChars Zeichen und markiert den Schnitt mit "...".
func truncateRunes(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars]) + "..."
}

const flashcardSystemPrompt = "You are a thesis defense coach. You write short, precise examination questions " +
	"that a committee could ask about the candidate's thesis, each with a concise model answer."

// FlashcardPrompt fordert genau amount Frage/Antwort-Paare als JSON-Array an.
func FlashcardPrompt(thesis *models.Thesis, chapters []models.Chapter, amount int, category string, maxChars int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thesis title: %s\n", thesis.Title)
	if thesis.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", thesis.Topic)
	}
	if len(thesis.ResearchQuestions) > 0 {
		fmt.Fprintf(&b, "Research questions:\n- %s\n", strings.Join(thesis.ResearchQuestions, "\n- "))
	}
	b.WriteString("\nChapters:\n")
	for _, ch := range chapters {
		content := strings.TrimSpace(ch.Content)
		if content == "" {
			content = "(empty)"
		}
		fmt.Fprintf(&b, "## %s\n%s\n\n", ch.Title, truncateRunes(content, maxChars))
	}
	fmt.Fprintf(&b, "Create exactly %d flashcards in the category %q for defense preparation.\n", amount, category)
	b.WriteString(`Respond only with a JSON array of objects with the keys "question" and "answer", for example:
[{"question": "What is the main research gap?", "answer": "..."}]`)
	return b.String()
}

var methodologyLabels = map[string]string{
	"qualitative":     "Qualitative",
	"quantitative":    "Quantitative",
	"mixed":           "Mixed Methods",
	"case_study":      "Case Study",
	"phenomenology":   "Phenomenology",
	"grounded_theory": "Grounded Theory",
	"ethnography":     "Ethnography",
	"survey":          "Survey Research",
	"experimental":    "Experimental (RCT)",
	"correlational":   "Correlational",
	"explanatory":     "Explanatory Sequential",
	"exploratory":     "Exploratory Sequential",
	"convergent":      "Convergent Parallel",
}

// MethodologyLabel liefert die Anzeigebezeichnung einer Auswahl oder die ID selbst.
func MethodologyLabel(id string) string {
	if l, ok := methodologyLabels[id]; ok {
		return l
	}
	return id
}

const methodologySystemPrompt = assistantBasePrompt +
	"You write methodology chapters. Answer in Markdown with headings (##) and bullet points only, no preamble."

// MethodologyPrompt beschreibt die gewählte Methodik und den Kontext der Thesis.
func MethodologyPrompt(thesis *models.Thesis, methodologyType, specific string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thesis title: %s\n", thesis.Title)
	if thesis.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", thesis.Topic)
	}
	if len(thesis.ResearchQuestions) > 0 {
		fmt.Fprintf(&b, "Research questions:\n- %s\n", strings.Join(thesis.ResearchQuestions, "\n- "))
	}
	fmt.Fprintf(&b, "\nResearch approach: %s\nSpecific design: %s\n\n", MethodologyLabel(methodologyType), MethodologyLabel(specific))
	b.WriteString("Generate a structured outline for the methodology chapter. Cover research design and its justification, ")
	b.WriteString("sampling and participants, data collection instruments and procedures, data analysis, ")
	b.WriteString("validity and reliability (or trustworthiness), ethical considerations and limitations. ")
	b.WriteString("Under each heading give short guidance notes the student can expand.")
	return b.String()
}
