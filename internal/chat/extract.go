package chat

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/JoelCyril/Pulso.ai/internal/ai"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:my name is|i am|call me|name's|i'm|called)\s+([a-zA-Z\s]+)`),
	regexp.MustCompile(`(?i)would like to be called\s+([a-zA-Z\s]+)`),
	regexp.MustCompile(`(?i)([a-zA-Z]+)$|([a-zA-Z]+)\.`),
}

var agePattern = regexp.MustCompile(`\d{1,3}`)

// extractNameFast tries the regex fast path for a name answer.
func extractNameFast(input string) (string, bool) {
	for _, pattern := range namePatterns {
		match := pattern.FindStringSubmatch(input)
		if match == nil {
			continue
		}
		candidate := match[1]
		if candidate == "" && len(match) > 2 {
			candidate = match[2]
		}
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || len(candidate) >= 20 || len(strings.Fields(candidate)) > 3 {
			continue
		}
		return strings.ToUpper(candidate[:1]) + strings.ToLower(candidate[1:]), true
	}
	return "", false
}

// extractAgeFast picks the first number out of a free-text age answer.
func extractAgeFast(input string) (string, bool) {
	if m := agePattern.FindString(input); m != "" {
		return m, true
	}
	return "", false
}

var extractionCleanup = regexp.MustCompile(`(?i)^(the name is|my name is|i am|call me|extract:|output:)\s*`)
var extractionTrailing = regexp.MustCompile(`[.!?,"']+$`)

// extractViaAI asks the completion endpoint to pull a single value out
// of conversational input. Any failure returns the raw input.
func extractViaAI(ctx context.Context, client *ai.Client, field, input string) string {
	prompt := `You are a highly precise data extraction tool. Extract ONLY the specific value requested.

Examples:
- Input: "I would like to be called Joel" -> Output: Joel
- Input: "my name is Sarah Smith" -> Output: Sarah Smith
- Input: "you can call me Michael" -> Output: Michael
- Input: "I am 25 years old" -> Output: 25

Task: Extract the "` + field + `" from the following input.
Input: "` + input + `"

Output:`

	content, err := client.Complete(ctx, ai.Request{
		Messages: []ai.Message{
			{Role: "system", Content: "You return ONLY the extracted value. No sentences. No punctuation."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
		MaxTokens:   10,
		Timeout:     8 * time.Second,
	})
	if err != nil {
		return input
	}

	extracted := strings.TrimSpace(content)
	extracted = extractionCleanup.ReplaceAllString(extracted, "")
	extracted = extractionTrailing.ReplaceAllString(extracted, "")
	if strings.EqualFold(extracted, "unknown") || len(extracted) > 30 || extracted == "" {
		return input
	}
	return extracted
}
