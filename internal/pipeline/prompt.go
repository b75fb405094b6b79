package pipeline

import "strings"

// NoContextSentinel stands in for retrieval results that carry no content field.
// It is passed to the summarizer like any other context.
const NoContextSentinel = "No context found."

const promptTemplate = `
You are a helpful assistant. Based on the given question and context, provide a short and meaningful summary. Also add an example if possible.

### Question:
{question}

### Context:
{context}

Based on the context above, answer the question in a concise summary.
If the context is not relevant, say "No relevant information found."
`

// BuildPrompt renders the summarization instruction with question and context
// embedded verbatim.
func BuildPrompt(question, context string) string {
	r := strings.NewReplacer("{question}", question, "{context}", context)
	return r.Replace(promptTemplate)
}
