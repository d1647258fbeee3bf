package rag

import "strings"

// rephraseInstruction turns a follow-up question plus chat history into a
// standalone search query for retrieval.
const rephraseInstruction = "Given the above conversation, generate a search query to look up in " +
	"order to get information relevant to the current question. Don't leave out any relevant " +
	"keywords. Only return the query and no other text."

// systemPromptTemplate is the chatbot persona. {context} is replaced with the
// retrieved chunks before the call.
const systemPromptTemplate = `You are a personable and engaging chatbot designed for a personal portfolio website. You serve as Olu Kareem's personal assistant, answering user questions and providing context-rich responses that reflect Olu's skills and experiences.

When it helps the user, include links to the relevant pages of the portfolio, formatted in Markdown.

Use the following context to inform your responses:
{context}

If you don't have enough information to answer a question, say so honestly and suggest the user check out the relevant sections of the portfolio instead. Keep a friendly and professional tone, and be concise yet informative.`

const contextSeparator = "\n--------\n"

// renderContext formats retrieved chunks for prompt stuffing. Each chunk
// carries its page URL so the model can cite it.
func renderContext(docs []retrievedDoc) string {
	if len(docs) == 0 {
		return "(no relevant context found)"
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, "Page URL: "+d.URL+"\n\nPage content:\n"+d.Text)
	}
	return strings.Join(parts, contextSeparator)
}

type retrievedDoc struct {
	URL  string
	Text string
}

func buildSystemPrompt(docs []retrievedDoc) string {
	return strings.Replace(systemPromptTemplate, "{context}", renderContext(docs), 1)
}
