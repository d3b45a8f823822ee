package services

import (
	"regexp"
	"strings"
)

// Vorkompilierte Muster, um JSON aus Modellantworten herauszulösen.
var (
	jsonBlockPattern     = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?([\\[{].*[\\]}])\\s*```")
	jsonObjectPattern    = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayPattern     = regexp.MustCompile(`(?s)\[.*\]`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON sucht den JSON-Teil einer Modellantwort: zuerst im Markdown-Codeblock,
// sonst das äußerste Array bzw. Objekt, je nachdem was zuerst beginnt.
func ExtractJSON(content string) string {
	if m := jsonBlockPattern.FindStringSubmatch(content); len(m) > 1 {
		return cleanJSON(m[1])
	}
	arr := jsonArrayPattern.FindStringIndex(content)
	obj := jsonObjectPattern.FindStringIndex(content)
	switch {
	case arr != nil && (obj == nil || arr[0] < obj[0]):
		return cleanJSON(content[arr[0]:arr[1]])
	case obj != nil:
		return cleanJSON(content[obj[0]:obj[1]])
	}
	return ""
}

// cleanJSON entfernt //-Kommentare außerhalb von Strings und hängende Kommas.
func cleanJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = stripLineComment(line)
	}
	return trailingCommaPattern.ReplaceAllString(strings.Join(lines, "\n"), "$1")
}

func stripLineComment(line string) string {
	if !strings.Contains(line, "//") {
		return line
	}
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
