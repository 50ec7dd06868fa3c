package insight

import (
	"fmt"
	"strings"
)

const systemPrompt = `You help people reflect on a self-assessment of personal strengths. You are warm and concrete, never clinical. You do not diagnose, rank people against others, or give career mandates.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Assessment: %s\n", in.Bank.Title)
	fmt.Fprintf(&b, "Scale: %d (strongly disagree) to %d (strongly agree)\n", in.Bank.Scale.Min, in.Bank.Scale.Max)

	b.WriteString("\nAverage score per category:\n")
	for _, cs := range in.Scores {
		fmt.Fprintf(&b, "- %s: %.2f\n", cs.Category.Label, cs.Score)
	}

	b.WriteString("\nTop categories:\n")
	for i, cs := range in.Top {
		fmt.Fprintf(&b, "%d. %s (%.2f)\n", i+1, cs.Category.Label, cs.Score)
	}

	b.WriteString(`
Instructions:
1. Write a 2-3 sentence summary of what this profile suggests.
2. Write one highlight per top category, using the category label exactly as given.
3. Reply in the same language as the category labels.
4. Keep every note under 60 words. Plain text only, no markdown.`)

	return b.String()
}
