package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Hadil1-h/pfe/internal/domain"
	"github.com/Hadil1-h/pfe/internal/llm"
)

func newTestSuggestService(client llm.GeneratorClient) *suggestService {
	return &suggestService{
		client: client,
		logger: zap.NewNop(),
		now:    fixedClock,
	}
}

func TestSuggestService_MergesGeneratedAndTemplated(t *testing.T) {
	client := &mockGeneratorClient{
		response: "Quel est le budget total ?\nQuels sont les projets en retard ?\n",
	}
	svc := newTestSuggestService(client)

	questions, err := svc.Suggest(context.Background(), SuggestRequest{
		Projects: []domain.ProjectRecord{{ID: 1, Name: "Refonte CRM"}},
		Language: "fr",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Quel est le budget total ?",
		"Quels sont les projets en retard ?",
		"Comment motiver l'équipe du projet Refonte CRM ?",
		"Comment gérer les retards du projet Refonte CRM ?",
		"Comment motiver les agents ?",
	}, questions)
	assert.Equal(t, llm.TaskSuggest, client.lastReq.Task)
	assert.Contains(t, client.lastReq.Prompt, "Langue : fr")
}

func TestSuggestService_CapsAtTen(t *testing.T) {
	client := &mockGeneratorClient{
		response: "Q1 ?\nQ2 ?\nQ3 ?\nQ4 ?\nQ5 ?",
	}
	svc := newTestSuggestService(client)

	projects := make([]domain.ProjectRecord, 6)
	for i := range projects {
		projects[i] = domain.ProjectRecord{ID: i + 1, Name: fmt.Sprintf("Projet %d", i+1)}
	}
	questions, err := svc.Suggest(context.Background(), SuggestRequest{
		Projects: projects,
		Language: "fr",
	})

	require.NoError(t, err)
	assert.Len(t, questions, 10)
	assert.Equal(t, "Q1 ?", questions[0], "generated questions come first")
}

func TestSuggestService_DropsDuplicates(t *testing.T) {
	client := &mockGeneratorClient{
		response: "Comment motiver les agents ?\nComment motiver l'équipe du projet Alpha ?",
	}
	svc := newTestSuggestService(client)

	questions, err := svc.Suggest(context.Background(), SuggestRequest{
		Projects: []domain.ProjectRecord{{ID: 1, Name: "Alpha"}},
		Language: "fr",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Comment motiver les agents ?",
		"Comment motiver l'équipe du projet Alpha ?",
		"Comment gérer les retards du projet Alpha ?",
	}, questions)
}

func TestSuggestService_GenerationFailureFallsBackToTemplates(t *testing.T) {
	client := &mockGeneratorClient{err: llm.ErrGeneratorUnavailable}
	svc := newTestSuggestService(client)

	questions, err := svc.Suggest(context.Background(), SuggestRequest{
		Projects: []domain.ProjectRecord{{ID: 1, Name: "Alpha"}},
		Language: "fr",
	})

	require.NoError(t, err, "generation failure must not surface as an error")
	assert.Equal(t, []string{
		"Comment motiver l'équipe du projet Alpha ?",
		"Comment gérer les retards du projet Alpha ?",
		"Comment motiver les agents ?",
	}, questions)
}

func TestSuggestService_EmptyDataset(t *testing.T) {
	client := &mockGeneratorClient{response: ""}
	svc := newTestSuggestService(client)

	questions, err := svc.Suggest(context.Background(), SuggestRequest{Language: "fr"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Comment motiver les agents ?"}, questions)
}
