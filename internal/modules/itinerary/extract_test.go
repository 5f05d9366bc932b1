package itinerary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptForLine(t *testing.T) {
	cases := []struct {
		line string
		want string
		ok   bool
	}{
		{
			line: "Visit the Eiffel Tower, a landmark.",
			want: "Visiting the Eiffel Tower a landmark, a scenic view of the main attractions.",
			ok:   true,
		},
		{
			line: "Morning: explore   Le Marais (historic district)!",
			want: "Exploring Le Marais historic district, showcasing the bustling local life and unique architecture.",
			ok:   true,
		},
		{
			line: "- ENJOY Lake Geneva",
			want: "Enjoying a day at Lake Geneva, with a focus on leisure and recreation activities.",
			ok:   true,
		},
		{
			line: "Visit\u00a0the Louvre",
			want: "Visiting the Louvre, a scenic view of the main attractions.",
			ok:   true,
		},
		{
			line: "Explore\u3000the\u3000Gion\u00a0\u00a0district",
			want: "Exploring the Gion district, showcasing the bustling local life and unique architecture.",
			ok:   true,
		},
		{
			line: "Enjoy the\u2009Tuileries\u202fGarden,\u00a0a park",
			want: "Enjoying a day at the Tuileries Garden a park, with a focus on leisure and recreation activities.",
			ok:   true,
		},
		{line: "Lunch at a local bistro.", ok: false},
		// trigger present but not followed by a phrase
		{line: "Places to visit.", ok: false},
		{line: "Visiting hours are long", ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, ok := PromptForLine(tc.line)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPromptForLineFirstTriggerWins(t *testing.T) {
	got, ok := PromptForLine("Enjoy a picnic then visit Montmartre")
	assert.True(t, ok)
	assert.Equal(t, "Enjoying a day at a picnic then visit Montmartre, with a focus on leisure and recreation activities.", got)
}

func TestExtractPromptsKeepsLineOrder(t *testing.T) {
	text := strings.Join([]string{
		"Day 1:",
		"- Visit the Louvre.",
		"- Dinner near the Seine.",
		"Day 2:",
		"- Explore Montmartre.",
		"- Enjoy a Seine river cruise.",
	}, "\n")

	got := ExtractPrompts(text)
	assert.Equal(t, []string{
		"Visiting the Louvre, a scenic view of the main attractions.",
		"Exploring Montmartre, showcasing the bustling local life and unique architecture.",
		"Enjoying a day at a Seine river cruise, with a focus on leisure and recreation activities.",
	}, got)
}

func TestExtractPromptsAtMostOnePerLine(t *testing.T) {
	text := "Visit the Louvre and explore the Tuileries and enjoy a crepe\nNothing here"
	got := ExtractPrompts(text)
	assert.Len(t, got, 1)
}

func TestExtractPromptsIsStableOnAcceptedLines(t *testing.T) {
	lines := []string{
		"Visit the Eiffel Tower, a landmark.",
		"Coffee break.",
		"Explore the Latin Quarter",
		"Enjoy!",
	}
	first := ExtractPrompts(strings.Join(lines, "\n"))

	var accepted []string
	for _, l := range lines {
		if _, ok := PromptForLine(l); ok {
			accepted = append(accepted, l)
		}
	}
	assert.Equal(t, first, ExtractPrompts(strings.Join(accepted, "\n")))
}

func TestExtractPromptsEmpty(t *testing.T) {
	assert.Empty(t, ExtractPrompts(""))
}
