package analysis

import (
	"fmt"
	"strings"
)

const analysisInstruction = "Répondez en une phrase concise en français, en évitant les réponses vides ou incohérentes."

const suggestInstruction = "Générez 5 questions pertinentes sur la gestion de projets, tâches, agents et équipes, basées sur le contexte. " +
	"Incluez des questions comme 'Comment motiver l'équipe du projet X ?', 'Comment gérer les retards du projet X ?', " +
	"et 'Comment motiver les agents ?'. Chaque question doit être concise et sur une ligne."

// buildAnalysisPrompt assembles the generation input: language tag, the
// serialized context, the raw query, and the concise-answer instruction.
func buildAnalysisPrompt(language string, agg *AggregateContext, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Langue : %s\n", language)
	fmt.Fprintf(&b, "Contexte : %s\n", agg.Serialize())
	fmt.Fprintf(&b, "Question : %s\n", query)
	fmt.Fprintf(&b, "Instruction : %s", analysisInstruction)
	return b.String()
}

// buildSuggestPrompt assembles the question-suggestion input over the
// compact context block.
func buildSuggestPrompt(language string, agg *AggregateContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Langue : %s\n", language)
	fmt.Fprintf(&b, "Contexte : %s\n", agg.SerializeShort())
	b.WriteString(suggestInstruction)
	return b.String()
}
