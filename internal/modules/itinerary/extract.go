// README: Turns itinerary text into image-generation prompts.
package itinerary

import (
	"regexp"
	"strings"
)

// RE2's \s is ASCII only; LLM output often carries NBSP or ideographic spaces.
const space = `\s\p{Z}\x{85}`

var (
	whitespace = regexp.MustCompile(`[` + space + `]+`)
	// anything that is not a letter, digit, whitespace or comma
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}` + space + `,]`)
	activityRe = regexp.MustCompile(`(?i)(visit|explore|enjoy)[` + space + `]+([\p{L}\p{N}` + space + `,]+)`)
)

var triggers = []string{"visit", "explore", "enjoy"}

var templates = map[string]string{
	"visit":   "Visiting %s, a scenic view of the main attractions.",
	"explore": "Exploring %s, showcasing the bustling local life and unique architecture.",
	"enjoy":   "Enjoying a day at %s, with a focus on leisure and recreation activities.",
}

// ExtractPrompts derives at most one prompt per line, in line order. Lines
// without a trigger verb, or where the verb is not followed by a phrase,
// contribute nothing. No cap is applied here.
func ExtractPrompts(text string) []string {
	var prompts []string
	for _, line := range strings.Split(text, "\n") {
		if p, ok := PromptForLine(line); ok {
			prompts = append(prompts, p)
		}
	}
	return prompts
}

// PromptForLine converts a single itinerary line.
func PromptForLine(line string) (string, bool) {
	if !hasTrigger(line) {
		return "", false
	}

	line = whitespace.ReplaceAllString(line, " ")
	line = disallowed.ReplaceAllString(line, "")

	m := activityRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	activity := cleanActivity(m[2])
	if activity == "" {
		return "", false
	}
	return strings.Replace(templates[strings.ToLower(m[1])], "%s", activity, 1), true
}

func hasTrigger(line string) bool {
	lower := strings.ToLower(line)
	for _, t := range triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// cleanActivity drops commas from the phrase so the template's own comma is
// the only one in the prompt.
func cleanActivity(phrase string) string {
	phrase = strings.ReplaceAll(phrase, ",", " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(phrase, " "))
}
