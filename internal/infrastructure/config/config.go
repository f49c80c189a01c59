package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Upstream assessment service
	AssessmentAPIURL string
	HTTPTimeout      time.Duration

	// Short-answer evaluation: "remote" uses the assessment service, "llm" a local model
	Evaluator       string
	EvaluatorAPIURL string
	LLMURL          string // OpenAI-compatible endpoint, e.g. "http://localhost:1234"
	LLMModel        string // model name, e.g. "qwen3-8b"

	// Saved answers and evaluations: "sqlite" or "redis"
	StoreDriver string
	SQLitePath  string
	RedisURL    string

	// Empty means the in-process event bus
	KafkaBrokers []string

	RedirectDelay time.Duration
	RedirectTo    string
	CORSOrigins   []string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	assessmentURL := getenvDefault("ASSESSMENT_API_URL", "http://localhost:8000")
	return &Config{
		ServerAddress:    mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:  mustGetDuration("SHUTDOWN_TIMEOUT"),
		AssessmentAPIURL: assessmentURL,
		HTTPTimeout:      getDurationDefault("HTTP_TIMEOUT", 60*time.Second),
		Evaluator:        oneOf("EVALUATOR", "remote", "llm"),
		EvaluatorAPIURL:  getenvDefault("EVALUATOR_API_URL", assessmentURL),
		LLMURL:           getenvDefault("LLM_URL", "http://localhost:1234"),
		LLMModel:         getenvDefault("LLM_MODEL", "qwen3-8b"),
		StoreDriver:      oneOf("STORE_DRIVER", "sqlite", "redis"),
		SQLitePath:       getenvDefault("SQLITE_PATH", "assessment.db"),
		RedisURL:         getenvDefault("REDIS_URL", "redis://localhost:6379/0"),
		KafkaBrokers:     getList("KAFKA_BROKERS"),
		RedirectDelay:    getDurationDefault("REDIRECT_DELAY", 3*time.Second),
		RedirectTo:       getenvDefault("REDIRECT_TO", "/"),
		CORSOrigins:      getListDefault("CORS_ORIGINS", []string{"*"}),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

// oneOf returns the variable's value, or the first allowed value when unset.
func oneOf(k string, allowed ...string) string {
	v := getenvDefault(k, allowed[0])
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	log.Fatalf("config: %s=%q must be one of %s", k, v, strings.Join(allowed, ", "))
	return ""
}

// getList splits a comma-separated variable, dropping empty entries.
func getList(k string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(k), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getListDefault(k string, fallback []string) []string {
	if list := getList(k); len(list) > 0 {
		return list
	}
	return fallback
}
