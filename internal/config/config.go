package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	pkgRetry "github.com/sprintai/ticket-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Inbound auth: requests must carry this value in the X-API-Key header
	APIKey string `env:"API_KEY,notEmpty"`

	// Ticket storage configuration
	StorageCfg StorageConfig `envPrefix:"STORAGE_"`

	// External service configurations
	OpenAICfg  OpenAIConnectorConfig  `envPrefix:"OPENAI_"`
	ChromaCfg  ChromaConnectorConfig  `envPrefix:"CHROMA_"`
	JiraCfg    JiraConnectorConfig    `envPrefix:"JIRA_"`
	WebCfg     WebConnectorConfig     `envPrefix:"WEB_"`
	YoutubeCfg YoutubeConnectorConfig `envPrefix:"YOUTUBE_"`

	// Retrieval configuration
	RAGCfg RAGConfig `envPrefix:"RAG_"`

	// Retry budget for startup probes (vector store heartbeat, bucket check)
	StartupRetry pkgRetry.RetryConfig `envPrefix:"STARTUP_RETRY_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Feature flags
	PersistTickets bool `env:"PERSIST_TICKETS" envDefault:"true"`
	EnableMocks    bool `env:"ENABLE_MOCKS,notEmpty"`

	// Environment (set from flag, not from env var)
	Environment string
}

// StorageConfig describes the ticket object store
type StorageConfig struct {
	BucketName  string `env:"BUCKET_NAME,notEmpty"`
	ServiceType string `env:"SERVICE_TYPE" envDefault:"jira"`
}

type OpenAIConnectorConfig struct {
	HTTPClientConfig
	ChatModel   string  `env:"CHAT_MODEL" envDefault:"gpt-3.5-turbo"`
	EmbedModel  string  `env:"EMBED_MODEL" envDefault:"text-embedding-3-small"`
	Temperature float32 `env:"TEMPERATURE" envDefault:"0.3"`
	MaxTokens   int     `env:"MAX_TOKENS" envDefault:"1000"`
}

type ChromaConnectorConfig struct {
	HTTPClientConfig
}

// JiraConnectorConfig carries only transport settings; the base URL and the
// bearer token arrive with each request.
type JiraConnectorConfig struct {
	HTTPClientConfig
	MaxIssues int `env:"MAX_ISSUES" envDefault:"50"`
}

type WebConnectorConfig struct {
	RenderTimeout time.Duration `env:"RENDER_TIMEOUT" envDefault:"30s"`
	ChromePath    string        `env:"CHROME_PATH"`
}

type YoutubeConnectorConfig struct {
	HTTPClientConfig
	SegmentSeconds int `env:"SEGMENT_SECONDS" envDefault:"30"`
}

// RAGConfig bounds chunking and names the fallback guidance page fetched
// when a project-scoped request supplies no sources of its own.
type RAGConfig struct {
	ChunkSize       int    `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap    int    `env:"CHUNK_OVERLAP" envDefault:"200"`
	DefaultGuideURL string `env:"DEFAULT_GUIDE_URL" envDefault:"https://community.atlassian.com/forums/Jira-articles/How-to-write-a-useful-Jira-ticket/ba-p/2147004"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT,notEmpty"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT,notEmpty"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE,notEmpty"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT,notEmpty"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT,notEmpty"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.RAGCfg.ChunkSize < 100 || cfg.RAGCfg.ChunkSize > 8000 {
		errors = append(errors, fmt.Sprintf("RAG_CHUNK_SIZE must be between 100 and 8000, got %d", cfg.RAGCfg.ChunkSize))
	}

	if cfg.RAGCfg.ChunkOverlap < 0 || cfg.RAGCfg.ChunkOverlap >= cfg.RAGCfg.ChunkSize {
		errors = append(errors, fmt.Sprintf("RAG_CHUNK_OVERLAP must be between 0 and RAG_CHUNK_SIZE(%d), got %d", cfg.RAGCfg.ChunkSize, cfg.RAGCfg.ChunkOverlap))
	}

	if cfg.OpenAICfg.Temperature < 0 || cfg.OpenAICfg.Temperature > 2 {
		errors = append(errors, fmt.Sprintf("OPENAI_TEMPERATURE must be between 0 and 2, got %g", cfg.OpenAICfg.Temperature))
	}

	if cfg.OpenAICfg.MaxTokens < 1 || cfg.OpenAICfg.MaxTokens > 4096 {
		errors = append(errors, fmt.Sprintf("OPENAI_MAX_TOKENS must be between 1 and 4096, got %d", cfg.OpenAICfg.MaxTokens))
	}

	if cfg.JiraCfg.MaxIssues < 1 || cfg.JiraCfg.MaxIssues > 100 {
		errors = append(errors, fmt.Sprintf("JIRA_MAX_ISSUES must be between 1 and 100, got %d", cfg.JiraCfg.MaxIssues))
	}

	if !cfg.EnableMocks {
		if cfg.OpenAICfg.Url == "" || cfg.OpenAICfg.Token == "" {
			errors = append(errors, "OPENAI_SERVICE_URL and OPENAI_TOKEN are required unless ENABLE_MOCKS is set")
		}
		if cfg.ChromaCfg.Url == "" {
			errors = append(errors, "CHROMA_SERVICE_URL is required unless ENABLE_MOCKS is set")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
