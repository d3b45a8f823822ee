package services

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	hyphenBreakPattern  = regexp.MustCompile(`([\p{L}\p{N}])-\r?\n(\p{Ll})`)
	spaceRunPattern     = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	newlineRunPattern   = regexp.MustCompile(`\n{3,}`)
	pageNumberPattern   = regexp.MustCompile(`^(?:[Pp]age\s*)?\d+(?:\s*(?:/|of)\s*\d+)?$`)
	inTextCitationRegex = regexp.MustCompile(`\(\s*[\p{Lu}][^()]{0,80}?,?\s(?:19|20)\d{2}[a-z]?\s*\)|\[\d+(?:[,–-]\s*\d+)*\]`)

	ligatures = strings.NewReplacer(
		"ﬁ", "fi",
		"ﬂ", "fl",
		"ﬀ", "ff",
		"ﬃ", "ffi",
		"ﬄ", "ffl",
		"ﬆ", "st",
	)
)

// NormalizeOptions steuern die Heuristiken für PDF-Seitentext
type NormalizeOptions struct {
	// Anteil der Seiten, auf denen eine Randzeile vorkommen muss, um als Kopf-/Fußzeile zu gelten
	HeaderFooterThreshold float64
}

// NormalizeStats enthält Kennzahlen zur Normalisierung
type NormalizeStats struct {
	NumPages       int `json:"numPages"`
	HyphenFixes    int `json:"hyphenFixes"`
	HeadersRemoved int `json:"headersRemoved"`
	FootersRemoved int `json:"footersRemoved"`
}

// TextNormalizer bereinigt extrahierten Text, bevor er gespeichert wird.
type TextNormalizer struct {
	logger *zap.Logger
	opts   NormalizeOptions
}

func NewTextNormalizer(logger *zap.Logger, opts NormalizeOptions) *TextNormalizer {
	if opts.HeaderFooterThreshold <= 0 {
		opts.HeaderFooterThreshold = 0.6
	}
	return &TextNormalizer{logger: logger, opts: opts}
}

// NormalizePages fügt PDF-Seiten zu einem Text zusammen. Wiederkehrende Kopf- und Fußzeilen
// sowie Seitenzahlen werden entfernt, Silbentrennungen am Zeilenende aufgelöst.
func (tn *TextNormalizer) NormalizePages(pages []string) (string, NormalizeStats) {
	stats := NormalizeStats{NumPages: len(pages)}
	headerCounts, footerCounts := detectHeaderFooterLines(pages)
	threshold := int(math.Ceil(tn.opts.HeaderFooterThreshold * float64(len(pages))))
	if threshold < 2 {
		threshold = 2
	}

	cleaned := make([]string, 0, len(pages))
	for _, raw := range pages {
		text := SanitizeText(raw)
		var fixes int
		text, fixes = fixHyphenation(text)
		stats.HyphenFixes += fixes

		lines := splitLines(text)
		headerDrop := map[string]bool{}
		footerDrop := map[string]bool{}
		for _, l := range firstNNonEmpty(lines, 2) {
			key := strings.TrimSpace(l)
			if (headerCounts[key] >= threshold || pageNumberPattern.MatchString(key)) && !ContainsCitation(key) {
				headerDrop[key] = true
			}
		}
		for _, l := range lastNNonEmpty(lines, 2) {
			key := strings.TrimSpace(l)
			if (footerCounts[key] >= threshold || pageNumberPattern.MatchString(key)) && !ContainsCitation(key) {
				footerDrop[key] = true
			}
		}

		kept := make([]string, 0, len(lines))
		for _, l := range lines {
			key := strings.TrimSpace(l)
			switch {
			case headerDrop[key]:
				stats.HeadersRemoved++
				delete(headerDrop, key)
				continue
			case footerDrop[key]:
				stats.FootersRemoved++
				delete(footerDrop, key)
				continue
			}
			kept = append(kept, l)
		}
		if page := collapseWhitespace(strings.Join(kept, "\n")); page != "" {
			cleaned = append(cleaned, page)
		}
	}

	full := strings.Join(cleaned, "\n\n")
	tn.logger.Debug("Normalized PDF text",
		zap.Int("pages", stats.NumPages),
		zap.Int("hyphen_fixes", stats.HyphenFixes),
		zap.Int("headers_removed", stats.HeadersRemoved),
		zap.Int("footers_removed", stats.FootersRemoved))
	return full, stats
}

// SanitizeText entfernt NUL-Bytes und ungültiges UTF-8, ersetzt Ligaturen und normalisiert nach NFC.
func SanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ToValidUTF8(s, "")
	s = ligatures.Replace(s)
	normalized, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return normalized
}

// ContainsCitation erkennt In-Text-Zitierungen wie "(Doe, 2020)" oder "[3]".
func ContainsCitation(s string) bool {
	return inTextCitationRegex.MatchString(s)
}

// fixHyphenation verbindet "Ab-\nweichung" zu "Abweichung".
func fixHyphenation(s string) (string, int) {
	count := len(hyphenBreakPattern.FindAllStringIndex(s, -1))
	if count == 0 {
		return s, 0
	}
	return hyphenBreakPattern.ReplaceAllString(s, "$1$2"), count
}

func collapseWhitespace(s string) string {
	s = spaceRunPattern.ReplaceAllString(s, " ")
	lines := splitLines(s)
	for i := range lines {
		lines[i] = strings.TrimRightFunc(lines[i], unicode.IsSpace)
	}
	s = newlineRunPattern.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(s)
}

// detectHeaderFooterLines zählt die Randzeilen über alle Seiten.
func detectHeaderFooterLines(pages []string) (map[string]int, map[string]int) {
	headers := map[string]int{}
	footers := map[string]int{}
	for _, p := range pages {
		lines := splitLines(p)
		for _, l := range firstNNonEmpty(lines, 2) {
			headers[strings.TrimSpace(l)]++
		}
		for _, l := range lastNNonEmpty(lines, 2) {
			footers[strings.TrimSpace(l)]++
		}
	}
	return headers, footers
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func firstNNonEmpty(lines []string, n int) []string {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
		if len(out) == n {
			break
		}
	}
	return out
}

func lastNNonEmpty(lines []string, n int) []string {
	var out []string
	for i := len(lines) - 1; i >= 0 && len(out) < n; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			out = append([]string{lines[i]}, out...)
		}
	}
	return out
}
