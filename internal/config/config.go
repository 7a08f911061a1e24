package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Port string

	// Auth
	ScreenerAPIKey string

	// Claude debate
	AnthropicAPIKey string
	AnthropicModel  string

	// External research
	CompaniesHouseAPIKey string
	CompaniesHouseURL    string
	PerplexityAPIKey     string
	PerplexityURL        string
	PerplexityModel      string

	// Investment thesis
	Thesis      string
	FitCriteria []string

	// Memo output
	MemoDir   string
	PDFExport bool

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF text extraction
	PDFFallbackPdftotext bool
}

// ThesisFile is the optional YAML file pointed at by THESIS_FILE. It
// overrides SCREENER_THESIS and the default fit criteria.
type ThesisFile struct {
	Fund        string   `yaml:"fund"`
	Thesis      string   `yaml:"thesis"`
	FitCriteria []string `yaml:"fit_criteria"`
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		ScreenerAPIKey: os.Getenv("SCREENER_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		CompaniesHouseAPIKey: os.Getenv("COMPANIES_HOUSE_API_KEY"),
		CompaniesHouseURL:    envOr("COMPANIES_HOUSE_URL", "https://api.company-information.service.gov.uk"),
		PerplexityAPIKey:     os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityURL:        envOr("PERPLEXITY_URL", "https://api.perplexity.ai"),
		PerplexityModel:      envOr("PERPLEXITY_MODEL", "sonar-pro"),

		Thesis: envOr("SCREENER_THESIS", "Investment thesis not configured."),

		MemoDir:   envOr("MEMO_DIR", "memos"),
		PDFExport: envBool("PDF_EXPORT", false),

		WorkerCount:  envInt("WORKER_COUNT", 2),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 50),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 24*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if path := os.Getenv("THESIS_FILE"); path != "" {
		if tf, err := LoadThesisFile(path); err == nil {
			if tf.Thesis != "" {
				cfg.Thesis = tf.Thesis
			}
			if len(tf.FitCriteria) > 0 {
				cfg.FitCriteria = tf.FitCriteria
			}
		}
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 50
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 24 * time.Hour
	}

	return cfg
}

// LoadThesisFile reads and decodes a YAML thesis file.
func LoadThesisFile(path string) (ThesisFile, error) {
	var tf ThesisFile
	data, err := os.ReadFile(path)
	if err != nil {
		return tf, fmt.Errorf("read thesis file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return tf, fmt.Errorf("parse thesis file: %w", err)
	}
	return tf, nil
}

func (c Config) Validate() error {
	if c.ScreenerAPIKey == "" {
		return fmt.Errorf("SCREENER_API_KEY is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
