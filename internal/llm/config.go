package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	TaskAnalyze TaskType = "analyze"
	TaskSuggest TaskType = "suggest"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	MaxNewTokens  int
	NumBeams      int
	NoRepeatNgram int
	TimeoutMs     int // overrides global if > 0
}

// GeneratorConfig holds all configuration for the text-generation subsystem.
type GeneratorConfig struct {
	LogCalls      bool
	Endpoint      string
	Model         string
	MaxInputRunes int // prompts longer than this are truncated, never rejected
	TimeoutMs     int
	MaxRetries    int
	Tasks         map[TaskType]TaskConfig
}

// DefaultConfig returns a GeneratorConfig with the generation settings the
// model was tuned for: beam search, a no-repeat bigram constraint, and a
// single returned sequence per call.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		LogCalls:      false,
		Endpoint:      "http://localhost:8090",
		Model:         "flan-t5-base-pm",
		MaxInputRunes: 2048,
		TimeoutMs:     30000,
		MaxRetries:    1,
		Tasks: map[TaskType]TaskConfig{
			TaskAnalyze: {MaxNewTokens: 150, NumBeams: 5, NoRepeatNgram: 2, TimeoutMs: 30000},
			TaskSuggest: {MaxNewTokens: 250, NumBeams: 4, NoRepeatNgram: 2, TimeoutMs: 45000},
		},
	}
}

// LoadConfig reads generator configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() GeneratorConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("PFE_GEN_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PFE_GEN_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("PFE_GEN_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PFE_GEN_MAX_INPUT_RUNES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxInputRunes = n
		}
	}
	if v := os.Getenv("PFE_GEN_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PFE_GEN_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskAnalyze, "PFE_GEN_ANALYZE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSuggest, "PFE_GEN_SUGGEST_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c GeneratorConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *GeneratorConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
