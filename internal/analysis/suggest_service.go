package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Hadil1-h/pfe/internal/domain"
	"github.com/Hadil1-h/pfe/internal/llm"
)

// maxSuggestions caps the merged suggestion list.
const maxSuggestions = 10

const questionMotivateAgents = "Comment motiver les agents ?"

// SuggestRequest carries the dataset a suggestion round works from.
type SuggestRequest struct {
	Projects []domain.ProjectRecord
	Tasks    []domain.TaskRecord
	Agents   []domain.AgentRecord
	Teams    []domain.TeamRecord
	Language string
}

// SuggestService produces candidate questions the user could ask next.
type SuggestService interface {
	// Suggest merges generated questions with per-project templates,
	// deduplicated and capped at maxSuggestions. A generation failure
	// degrades to templated questions only.
	Suggest(ctx context.Context, req SuggestRequest) ([]string, error)
}

type suggestService struct {
	client llm.GeneratorClient
	logger *zap.Logger
	now    func() time.Time
}

// NewSuggestService creates a SuggestService backed by a generator client.
func NewSuggestService(client llm.GeneratorClient, logger *zap.Logger) SuggestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &suggestService{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (s *suggestService) Suggest(ctx context.Context, req SuggestRequest) ([]string, error) {
	language := req.Language
	if language != LanguageFrench {
		s.logger.Warn("unsupported language, coercing", zap.String("language", language))
		language = LanguageFrench
	}

	currentDate := s.now().Format(DateLayout)
	agg := BuildContext(req.Projects, req.Tasks, req.Agents, req.Teams, currentDate, "")

	var generated []string
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:   llm.TaskSuggest,
		Prompt: buildSuggestPrompt(language, agg),
	})
	if err != nil {
		s.logger.Warn("suggestion generation failed, using templates only", zap.Error(err))
	} else {
		generated = splitLines(resp.Text)
	}

	return mergeQuestions(generated, req.Projects), nil
}

// splitLines breaks generation output into trimmed, non-empty lines.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// mergeQuestions combines generated questions with two templated questions
// per project plus the static agent-motivation question, dropping exact
// duplicates and capping the result.
func mergeQuestions(generated []string, projects []domain.ProjectRecord) []string {
	candidates := make([]string, 0, len(generated)+2*len(projects)+1)
	candidates = append(candidates, generated...)
	for _, p := range projects {
		candidates = append(candidates,
			fmt.Sprintf("Comment motiver l'équipe du projet %s ?", p.Name),
			fmt.Sprintf("Comment gérer les retards du projet %s ?", p.Name),
		)
	}
	candidates = append(candidates, questionMotivateAgents)

	seen := make(map[string]bool, len(candidates))
	merged := make([]string, 0, maxSuggestions)
	for _, q := range candidates {
		if seen[q] {
			continue
		}
		seen[q] = true
		merged = append(merged, q)
		if len(merged) == maxSuggestions {
			break
		}
	}
	return merged
}
