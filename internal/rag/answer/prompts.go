package answer

import (
	"fmt"
	"strings"

	"github.com/researchkit/researcherAPI/internal/domain/docModel"
)

func enhancePrompt(rawResults string) string {
	var b strings.Builder
	b.WriteString("The following are ranked search results from a document collection.\n\n")
	b.WriteString(rawResults)
	b.WriteString("\n\nProvide:\n")
	b.WriteString("1. A concise summary of what these results cover\n")
	b.WriteString("2. A direct answer to the implied question, if one can be drawn\n")
	b.WriteString("3. Notable insights or connections across the results\n")
	b.WriteString("4. Suggested next steps for the researcher\n")
	return b.String()
}

func comprehensivePrompt(query, context string) string {
	var b strings.Builder
	b.WriteString("Analyze the document excerpts below and answer the question.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", query)
	b.WriteString("Document excerpts:\n")
	b.WriteString(context)
	b.WriteString("\n\nStructure your response in six parts:\n")
	b.WriteString("1. Direct answer\n")
	b.WriteString("2. Key findings\n")
	b.WriteString("3. Supporting evidence (cite the source file and chunk)\n")
	b.WriteString("4. Analysis and insights\n")
	b.WriteString("5. Gaps and limitations in the available material\n")
	b.WriteString("6. Recommendations\n")
	return b.String()
}

func conversationalPrompt(query, context string, history []docModel.ConversationTurn) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Prior conversation (oldest first):\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", turn.UserMessage, turn.AssistantResponse)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Current question: %s\n\n", query)
	b.WriteString("Document excerpts:\n")
	b.WriteString(context)
	b.WriteString("\n\nAnswer the current question from the excerpts. ")
	b.WriteString("Acknowledge continuity with the prior conversation where relevant, ")
	b.WriteString("and close by proposing follow-up questions the user could explore next.")
	return b.String()
}
