package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairResponse_PassesThroughNormalOutput(t *testing.T) {
	got, repaired := RepairResponse("  Le projet avance bien.  ")

	assert.Equal(t, "Le projet avance bien.", got)
	assert.False(t, repaired)
}

func TestRepairResponse_EmptyAndPlaceholderOutputs(t *testing.T) {
	for _, raw := range []string{"", "   ", "Aucune réponse disponible", "UNKNOWN", "unknown"} {
		got, repaired := RepairResponse(raw)
		assert.Equal(t, MsgApology, got, "raw %q", raw)
		assert.True(t, repaired, "raw %q", raw)
	}
}

func TestRepairResponse_RepetitionArtifact(t *testing.T) {
	for _, raw := range []string{
		"d) : d)",
		"d) : d) : d)",
		"d): d) :d)",
		"a) : a) : a)",
	} {
		got, repaired := RepairResponse(raw)
		assert.Equal(t, MsgInvalidResponse, got, "raw %q", raw)
		assert.True(t, repaired, "raw %q", raw)
	}
}

func TestRepairResponse_DoesNotOvertrigger(t *testing.T) {
	for _, raw := range []string{
		"d) une liste : utile",
		"Réponse : le budget est correct.",
		"a) premier point",
	} {
		got, repaired := RepairResponse(raw)
		assert.Equal(t, raw, got, "raw %q", raw)
		assert.False(t, repaired, "raw %q", raw)
	}
}
