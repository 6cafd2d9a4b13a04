package analysis

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Hadil1-h/pfe/internal/domain"
	"github.com/Hadil1-h/pfe/internal/llm"
)

// LanguageFrench is the only language the model was fine-tuned on. Any
// other requested language is coerced, not rejected.
const LanguageFrench = "fr"

// Request is one analysis request over the caller-supplied dataset. The
// records are request-scoped snapshots; nothing here outlives the call.
type Request struct {
	Query        string
	Projects     []domain.ProjectRecord
	Tasks        []domain.TaskRecord
	Agents       []domain.AgentRecord
	Teams        []domain.TeamRecord
	FilterPeriod string
	Language     string
}

// Result is the analysis outcome: a response string that is always
// present, and an optional machine-readable payload.
type Result struct {
	Response string
	Data     StructuredData
}

// AnalyzeService resolves free-text questions about the dataset.
type AnalyzeService interface {
	// Resolve answers a query, deterministically when a cascade rule
	// matches and through the generation fallback otherwise. It never
	// fails: every error path degrades to a textual response.
	Resolve(ctx context.Context, req Request) (*Result, error)
}

type analyzeService struct {
	client  llm.GeneratorClient
	cascade *Cascade
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyzeService creates an AnalyzeService backed by a generator client.
func NewAnalyzeService(client llm.GeneratorClient, logger *zap.Logger) AnalyzeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analyzeService{
		client:  client,
		cascade: NewCascade(logger),
		logger:  logger,
		now:     time.Now,
	}
}

func (s *analyzeService) Resolve(ctx context.Context, req Request) (*Result, error) {
	language := req.Language
	if language != LanguageFrench {
		s.logger.Warn("unsupported language, coercing", zap.String("language", language))
		language = LanguageFrench
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	currentDate := s.now().Format(DateLayout)
	agg := BuildContext(req.Projects, req.Tasks, req.Agents, req.Teams, currentDate, req.FilterPeriod)

	if m := s.cascade.Resolve(query, agg); m != nil {
		return &Result{Response: m.Response, Data: m.Data}, nil
	}

	prompt := buildAnalysisPrompt(language, agg, query)

	var response string
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:   llm.TaskAnalyze,
		Prompt: prompt,
	})
	if err != nil {
		s.logger.Error("generation failed", zap.Error(err))
		response = MsgGenerationError
	} else {
		response = resp.Text
	}

	repaired, wasRepaired := RepairResponse(response)
	if wasRepaired {
		s.logger.Warn("degenerate generation output repaired", zap.String("raw", response))
	}

	var data StructuredData
	if strings.Contains(query, "projets terminés") {
		names := make([]string, 0, len(agg.CompletedProjects))
		for _, p := range agg.CompletedProjects {
			names = append(names, p.Name)
		}
		data = CompletedProjectsData{
			CompletedProjects: len(agg.CompletedProjects),
			ProjectNames:      names,
			Type:              PayloadList,
		}
	}

	return &Result{Response: repaired, Data: data}, nil
}
