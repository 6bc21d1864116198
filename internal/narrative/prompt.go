// Package narrative implements recap.NarrativeGenerator on top of hosted
// language models. Each personality maps to a system prompt; the user prompt
// carries the week's matchup sentences and awards.
package narrative

import (
	"fmt"
	"strings"

	"github.com/albapepper/fantasy-recap/internal/recap"
)

const promptVersion = "v2"

const baseRules = `You write the weekly recap for a fantasy football league. The recap will be read aloud by a text-to-speech voice.

Rules:
1. Start with a title line that names the week number.
2. Cover every matchup, keeping every team name and score exactly as given.
3. Finish with a weekly awards section covering each award provided.
4. Plain text only: no markdown, no bullet characters, no stage directions.
5. Keep it under 400 words.`

var personaPrompts = map[recap.Personality]string{
	recap.PersonalityHype: `Voice: a high-energy sports radio host. Big reactions, exclamation points, catchphrases, and genuine excitement for every win.`,

	recap.PersonalityRoast: `Voice: the league commissioner roasting the group chat. Playful trash talk aimed at losers and lineup blunders. Keep it good-natured and never cruel.`,

	recap.PersonalityAnalyst: `Voice: a calm studio analyst. Measured tone, notes margins and what decided each game, dry humor at most.`,
}

// SystemPrompt returns the full system prompt for a personality.
func SystemPrompt(p recap.Personality) (string, error) {
	persona, ok := personaPrompts[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", recap.ErrUnknownPersonality, p)
	}
	return baseRules + "\n\n" + persona, nil
}

// UserPrompt renders the structured payload for the model.
func UserPrompt(req recap.NarrativeRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Week: %d\n\nMatchups:\n", req.Week)
	for i, n := range req.Narratives {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, n)
	}
	sb.WriteString("\nAwards:\n")
	sb.WriteString(req.AwardsText)
	sb.WriteString("\n")
	return sb.String()
}

// cleanResponse strips markdown fences some models wrap plain text in.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```text")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
