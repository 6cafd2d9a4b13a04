package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for a text-generation call.
type GenerateRequest struct {
	Task         TaskType
	Prompt       string
	MaxNewTokens *int // nil uses task default
	NumBeams     *int // nil uses task default
}

// GenerateResponse holds the result of a text-generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	Truncated bool
	LatencyMs int64
}

// GeneratorClient provides access to the text-generation server.
type GeneratorClient interface {
	// Generate sends a prompt and returns the raw generated text.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the generation server is reachable.
	Available(ctx context.Context) bool
}

// httpGeneratorClient implements GeneratorClient against the generation
// sidecar's HTTP API (POST /api/generate).
type httpGeneratorClient struct {
	cfg      GeneratorConfig
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a GeneratorClient that talks to the generation sidecar.
func NewHTTPClient(cfg GeneratorConfig, observer Observer) GeneratorClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpGeneratorClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// generateBody is the JSON body sent to POST /api/generate.
type generateBody struct {
	Model              string `json:"model"`
	Prompt             string `json:"prompt"`
	MaxNewTokens       int    `json:"max_new_tokens"`
	NumBeams           int    `json:"num_beams"`
	NoRepeatNgramSize  int    `json:"no_repeat_ngram_size"`
	NumReturnSequences int    `json:"num_return_sequences"`
}

// generateReply is the JSON body returned by POST /api/generate.
type generateReply struct {
	Model string `json:"model"`
	Text  string `json:"text"`
}

func (c *httpGeneratorClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	maxTok := taskCfg.MaxNewTokens
	if req.MaxNewTokens != nil {
		maxTok = *req.MaxNewTokens
	}
	beams := taskCfg.NumBeams
	if req.NumBeams != nil {
		beams = *req.NumBeams
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	// The server refuses nothing: prompts past the context window are cut,
	// deterministically, from the end.
	prompt, truncated := TruncatePrompt(req.Prompt, c.cfg.MaxInputRunes)

	body := generateBody{
		Model:              c.cfg.Model,
		Prompt:             prompt,
		MaxNewTokens:       maxTok,
		NumBeams:           beams,
		NoRepeatNgramSize:  taskCfg.NoRepeatNgram,
		NumReturnSequences: 1,
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		reply, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				PromptLen: len(prompt),
				Truncated: truncated,
				LatencyMs: latency,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      reply.Text,
				Model:     reply.Model,
				Truncated: truncated,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	errCode := errorCode(lastErr)
	c.observer.OnCallComplete(CallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		PromptLen: len(prompt),
		Truncated: truncated,
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errCode,
	})

	if ctx.Err() != nil {
		return nil, ErrTimeout
	}
	if isConnectionError(lastErr) {
		return nil, ErrGeneratorUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *httpGeneratorClient) doRequest(ctx context.Context, body generateBody) (*generateReply, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation server returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var reply generateReply
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &reply, nil
}

func (c *httpGeneratorClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/api/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// TruncatePrompt cuts a prompt to at most maxRunes runes. Returns the
// possibly shortened prompt and whether anything was removed.
func TruncatePrompt(prompt string, maxRunes int) (string, bool) {
	if maxRunes <= 0 {
		return prompt, false
	}
	runes := []rune(prompt)
	if len(runes) <= maxRunes {
		return prompt, false
	}
	return string(runes[:maxRunes]), true
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	return false
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrGeneratorUnavailable):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
