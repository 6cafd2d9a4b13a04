package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hadil1-h/pfe/internal/analysis"
	"github.com/Hadil1-h/pfe/internal/repository"
)

// Config for the HTTP API handler.
type Config struct {
	Analyze     analysis.AnalyzeService
	Suggest     analysis.SuggestService
	Repo        repository.DatasetRepo
	Logger      *zap.Logger
	BasePath    string
	CORSOrigins []string
}

type apiErrorBody struct {
	Code    string `json:"code" example:"bad_request"`
	Message string `json:"message" example:"query is required"`
}

// apiError models the error envelope.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

func newAPIError(status int, code, message string) huma.StatusError {
	if code == "" {
		code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	return &apiError{
		status: status,
		Body:   apiErrorBody{Code: code, Message: message},
	}
}

// New returns an HTTP handler exposing the assistant API.
func New(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/api"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg)
	}

	router := chi.NewRouter()
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware(cfg.CORSOrigins))

	hcfg := huma.DefaultConfig("Assistant Gestion de Projets", "1.0.0")
	hcfg.OpenAPIPath = "/openapi"
	api := humachi.New(router, hcfg)
	group := huma.NewGroup(api, basePath)

	registerHealth(group)
	registerAnalyze(group, cfg.Analyze)
	registerSuggest(group, cfg.Suggest)
	registerProjects(group, cfg.Repo)

	return router, nil
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func registerAnalyze(api huma.API, svc analysis.AnalyzeService) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze",
		Method:      http.MethodPost,
		Path:        "/ai/analyze",
		Summary:     "Answer a free-text question over the supplied dataset",
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body AnalyzeRequest `json:"body"`
	}) (*struct {
		Body AnalyzeResponse `json:"body"`
	}, error) {
		if strings.TrimSpace(input.Body.Query) == "" {
			return nil, newAPIError(http.StatusBadRequest, "bad_request", "query is required")
		}
		result, err := svc.Resolve(ctx, analysis.Request{
			Query:        input.Body.Query,
			Projects:     analysis.NormalizeProjects(input.Body.Projects),
			Tasks:        analysis.NormalizeTasks(input.Body.Tasks),
			Agents:       analysis.NormalizeAgents(input.Body.Agents),
			Teams:        analysis.NormalizeTeams(input.Body.Teams),
			FilterPeriod: input.Body.FilterPeriod,
			Language:     input.Body.Language,
		})
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		return &struct {
			Body AnalyzeResponse `json:"body"`
		}{Body: AnalyzeResponse{
			Response:       result.Response,
			StructuredData: result.Data,
		}}, nil
	})
}

func registerSuggest(api huma.API, svc analysis.SuggestService) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest-questions",
		Method:      http.MethodPost,
		Path:        "/ai/suggest-questions",
		Summary:     "Suggest questions the user could ask",
		Errors:      []int{http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body SuggestRequest `json:"body"`
	}) (*struct {
		Body SuggestResponse `json:"body"`
	}, error) {
		questions, err := svc.Suggest(ctx, analysis.SuggestRequest{
			Projects: analysis.NormalizeProjects(input.Body.Projects),
			Tasks:    analysis.NormalizeTasks(input.Body.Tasks),
			Agents:   analysis.NormalizeAgents(input.Body.Agents),
			Teams:    analysis.NormalizeTeams(input.Body.Teams),
			Language: input.Body.Language,
		})
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		return &struct {
			Body SuggestResponse `json:"body"`
		}{Body: SuggestResponse{Questions: questions}}, nil
	})
}

func registerProjects(api huma.API, repo repository.DatasetRepo) {
	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects with their task titles",
		Errors:      []int{http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		UseAI bool `query:"useAI" doc:"Skip projects without tasks"`
	}) (*struct {
		Body []ProjectResponse `json:"body"`
	}, error) {
		projects, err := repo.ListProjects(ctx, input.UseAI)
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		tasks, err := repo.ListTasks(ctx)
		if err != nil {
			return nil, newAPIError(http.StatusInternalServerError, "internal_error", err.Error())
		}
		titlesByProject := make(map[int][]string, len(projects))
		for _, t := range tasks {
			if t.Title == "" {
				continue
			}
			titlesByProject[t.ProjectID] = append(titlesByProject[t.ProjectID], t.Title)
		}
		out := make([]ProjectResponse, 0, len(projects))
		for _, p := range projects {
			out = append(out, toProjectResponse(p, titlesByProject[p.ID]))
		}
		return &struct {
			Body []ProjectResponse `json:"body"`
		}{Body: out}, nil
	})
}

// requestLogger tags each request with a UUID and logs method, path,
// and duration at debug level.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			w.Header().Set("X-Request-ID", requestID)
			next.ServeHTTP(w, r)
			logger.Debug("http request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// corsMiddleware answers preflight requests and sets the allow headers
// for the configured origins. "*" allows everything.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
