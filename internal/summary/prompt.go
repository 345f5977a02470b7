package summary

import "fmt"

const (
	// maxContentBytes caps the article text sent to a provider, reserving
	// context-window room for the response.
	maxContentBytes = 102000

	defaultMaxTokens   = 8000
	defaultTemperature = 0.3

	defaultOpenAIModel    = "gpt-3.5-turbo"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

const systemPrompt = "You are an expert at summarizing SCP Foundation documents. " +
	"Provide clear, concise summaries that capture the essential nature and " +
	"properties of anomalous objects."

const promptTemplate = `Please provide a concise, informative summary of this SCP Foundation item. Focus on:
1. What the object/entity is
2. Its key anomalous properties
3. Its containment class and basic containment procedures
4. Any notable risks or special characteristics

Keep the summary between 100-200 words and write it in a clear, accessible style.

SCP Item: %s - %s

Content:
%s
`

// buildPrompt renders the summary request, truncating oversized content.
func buildPrompt(itemID, title, content string) string {
	if len(content) > maxContentBytes {
		content = content[:maxContentBytes]
	}
	return fmt.Sprintf(promptTemplate, itemID, title, content)
}
