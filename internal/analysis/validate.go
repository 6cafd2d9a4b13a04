package analysis

import (
	"regexp"
	"strings"
)

// Canned substitutes for generation output the user should never see.
const (
	// MsgGenerationError replaces the response when the generation call
	// itself failed.
	MsgGenerationError = "Erreur lors de la génération de la réponse."

	// MsgApology replaces empty or placeholder generation output.
	MsgApology = "Désolé, je n'ai pas pu générer une réponse précise pour cette question. Essayez de reformuler."

	// MsgInvalidResponse replaces output caught by the repetition check.
	MsgInvalidResponse = "Erreur : Réponse invalide. Essayez de reformuler la question."
)

// placeholderOutputs are degenerate strings the model emits instead of an
// answer. Compared case-insensitively after trimming.
var placeholderOutputs = map[string]bool{
	"":                          true,
	"aucune réponse disponible": true,
	"unknown":                   true,
}

// reRepetitionArtifact catches a known beam-search failure mode: the output
// collapses into a repeated "x) : x) : ... x)" fragment.
var reRepetitionArtifact = regexp.MustCompile(`^(?:[\p{L}\p{N}]\)\s*:\s*)+[\p{L}\p{N}]\)$`)

// RepairResponse inspects generated text and substitutes a canned message
// when it is degenerate. It returns the (possibly replaced) text and
// whether a repair was applied. It is never applied to rule-matched
// answers, only to generative output.
func RepairResponse(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)

	if placeholderOutputs[strings.ToLower(trimmed)] {
		return MsgApology, true
	}
	if reRepetitionArtifact.MatchString(trimmed) {
		return MsgInvalidResponse, true
	}
	return trimmed, false
}
