// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	DatabasePath      string
	KnowledgeBasePath string

	// LLMProvider selects the general-purpose model backend: "gemini" or "openai".
	LLMProvider          string
	GoogleAPIKey         string
	GeminiModel          string
	GeminiEmbeddingModel string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	OpenAIEmbeddingModel string
	LLMTemperature       float32

	PineconeAPIKey    string
	PineconeIndexHost string
	PineconeNamespace string
	RetrievalTopK     int

	// Terjman runs as a Lambda function; empty disables the local engine.
	TerjmanFunctionName string
	AWSRegion           string

	SafetyQueryTemplate  string
	SafetyMaxResults     int
	SafetyDangerKeywords []string

	AdminJWTSecret    string
	AdminPasswordHash string

	RateLimitPerMinute int
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables or .env file.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if !isProduction(env) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8001"),
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),

		DatabasePath:      getEnv("DATABASE_PATH", "zelig.db"),
		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "data/knowledge_base.json"),

		LLMProvider:          strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		GoogleAPIKey:         getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		LLMTemperature:       float32(getEnvAsFloat("LLM_TEMPERATURE", 0.3)),

		PineconeAPIKey:    getEnv("PINECONE_API_KEY", ""),
		PineconeIndexHost: getEnv("PINECONE_INDEX_HOST", ""),
		PineconeNamespace: getEnv("PINECONE_NAMESPACE", "zelig"),
		RetrievalTopK:     getEnvAsInt("RAG_TOPK", 3),

		TerjmanFunctionName: getEnv("TERJMAN_LAMBDA_FUNCTION", ""),
		AWSRegion:           getEnv("AWS_REGION", ""),

		SafetyQueryTemplate:  getEnv("SAFETY_QUERY_TEMPLATE", "%s Morocco crime safety news recent"),
		SafetyMaxResults:     getEnvAsInt("SAFETY_MAX_RESULTS", 3),
		SafetyDangerKeywords: getEnvAsList("SAFETY_DANGER_KEYWORDS", nil),

		AdminJWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges always, and required secrets in production.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("LLM_PROVIDER must be gemini or openai, got %q", c.LLMProvider)
	}
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("RAG_TOPK must be positive")
	}
	if c.SafetyMaxResults <= 0 {
		return fmt.Errorf("SAFETY_MAX_RESULTS must be positive")
	}
	if !strings.Contains(c.SafetyQueryTemplate, "%s") {
		return fmt.Errorf("SAFETY_QUERY_TEMPLATE must contain %%s")
	}

	if !c.IsProduction() {
		return nil
	}
	missing := []string{}
	switch c.LLMProvider {
	case "gemini":
		if c.GoogleAPIKey == "" {
			missing = append(missing, "GOOGLE_API_KEY")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	}
	if c.AdminJWTSecret != "" && c.AdminPasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD_HASH")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required production environment variables: %v", missing)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return isProduction(c.Environment)
}

// LLMConfigured reports whether the selected LLM provider has credentials.
func (c *Config) LLMConfigured() bool {
	if c.LLMProvider == "openai" {
		return c.OpenAIAPIKey != ""
	}
	return c.GoogleAPIKey != ""
}

func (c *Config) PineconeConfigured() bool {
	return c.PineconeAPIKey != "" && c.PineconeIndexHost != ""
}

func isProduction(env string) bool {
	return strings.ToLower(env) == "production"
}

// getEnv returns the value of an environment variable or a default.
// Blank values count as unset.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as float. Using default value.", key)
		return defaultValue
	}
	return f
}

// getEnvAsList splits a comma-separated env var, dropping blank items.
func getEnvAsList(key string, defaultValue []string) []string {
	strValue := getEnv(key, "")
	if strings.TrimSpace(strValue) == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(strValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
