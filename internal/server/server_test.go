package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Hadil1-h/pfe/internal/analysis"
	"github.com/Hadil1-h/pfe/internal/db"
	"github.com/Hadil1-h/pfe/internal/llm"
	"github.com/Hadil1-h/pfe/internal/repository"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.text}, nil
}

func (s *stubGenerator) Available(context.Context) bool { return s.err == nil }

func newTestServer(t *testing.T, gen llm.GeneratorClient) *httptest.Server {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	seed := []string{
		`INSERT INTO societe (id, raison_sociale) VALUES (1, 'Acme SARL')`,
		`INSERT INTO projet (id, nom_projet, date_fin, id_statut_projet, budget, archived, id_societe)
			VALUES (1, 'Refonte CRM', '2024-12-31', 2, 1000, 0, 1)`,
		`INSERT INTO projet (id, nom_projet, id_statut_projet, budget, archived)
			VALUES (2, 'Site Vitrine', 2, 500.50, 0)`,
		`INSERT INTO tache_projet (id, id_projet, id_statut_tache, titre)
			VALUES (1, 1, 2, 'Tests recette')`,
	}
	for _, stmt := range seed {
		_, err := database.Exec(stmt)
		require.NoError(t, err)
	}

	logger := zap.NewNop()
	handler, err := New(Config{
		Analyze:     analysis.NewAnalyzeService(gen, logger),
		Suggest:     analysis.NewSuggestService(gen, logger),
		Repo:        repository.NewSQLiteDatasetRepo(database),
		Logger:      logger,
		BasePath:    "/api",
		CORSOrigins: []string{"*"},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, []byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestAnalyzeEndpointDeterministicRule(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{text: "jamais utilisé"})

	resp, body := postJSON(t, srv.URL+"/api/ai/analyze", map[string]any{
		"query": "Quel est le budget total ?",
		"projects": []map[string]any{
			{"id": 1, "nomProjet": "Refonte CRM", "budget": 1000},
			{"id": 2, "nomProjet": "Site Vitrine", "budget": 500.50},
		},
		"language": "fr",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Response       string         `json:"response"`
		StructuredData map[string]any `json:"structured_data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Le budget total des projets est de 1500.50 $.", out.Response)
	require.NotNil(t, out.StructuredData)
	assert.Equal(t, "budget", out.StructuredData["type"])
	assert.InDelta(t, 1500.50, out.StructuredData["total_budget"], 0.001)
}

func TestAnalyzeEndpointFallbackNullPayload(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{text: "Tout avance bien."})

	resp, body := postJSON(t, srv.URL+"/api/ai/analyze", map[string]any{
		"query":    "Donne un avis général",
		"language": "fr",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &out))
	assert.JSONEq(t, `"Tout avance bien."`, string(out["response"]))
	assert.Equal(t, "null", string(out["structured_data"]))
}

func TestAnalyzeEndpointGeneratorDownStillAnswers(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{err: llm.ErrGeneratorUnavailable})

	resp, body := postJSON(t, srv.URL+"/api/ai/analyze", map[string]any{
		"query":    "Donne un avis général",
		"language": "fr",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, analysis.MsgGenerationError, out.Response)
}

func TestAnalyzeEndpointEmptyQuery(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, body := postJSON(t, srv.URL+"/api/ai/analyze", map[string]any{
		"query": "   ",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "bad_request", out.Error.Code)
	assert.Equal(t, "query is required", out.Error.Message)
}

func TestSuggestEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{text: "Quel est le budget total ?"})

	resp, body := postJSON(t, srv.URL+"/api/ai/suggest-questions", map[string]any{
		"projects": []map[string]any{{"id": 1, "nomProjet": "Refonte CRM"}},
		"language": "fr",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Questions []string `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out.Questions, "Quel est le budget total ?")
	assert.Contains(t, out.Questions, "Comment motiver l'équipe du projet Refonte CRM ?")
	assert.LessOrEqual(t, len(out.Questions), 10)
}

func TestListProjectsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/api/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "Refonte CRM", out[0]["nomProjet"])
	assert.Equal(t, "Acme SARL", out[0]["societe"])
	assert.Equal(t, []any{"Tests recette"}, out[0]["taches"])
}

func TestListProjectsEndpointUseAISkipsEmpty(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/api/projects?useAI=true")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Equal(t, "Refonte CRM", out[0]["nomProjet"])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/ai/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubGenerator{})

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
}
