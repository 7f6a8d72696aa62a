// Package app builds the Zelig backend from configuration and exposes its
// HTTP handler.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zelig/zelig-backend/internal/config"
	"github.com/zelig/zelig-backend/internal/knowledge"
	"github.com/zelig/zelig-backend/internal/ratelimit"
	"github.com/zelig/zelig-backend/internal/repository"
	"github.com/zelig/zelig-backend/internal/services"
	"github.com/zelig/zelig-backend/internal/services/ai"
	"github.com/zelig/zelig-backend/internal/services/rag"
	"github.com/zelig/zelig-backend/internal/services/safety"
	"github.com/zelig/zelig-backend/internal/services/search"
	"github.com/zelig/zelig-backend/internal/services/translate"
	"github.com/zelig/zelig-backend/internal/services/vector"
)

// App aggregates the services behind the HTTP API.
type App struct {
	Config *config.Config
	Logger services.Logger

	DB          *gorm.DB
	Places      repository.PlaceRepository
	Provider    ai.Provider
	Store       vector.Store
	Searcher    search.Searcher
	Local       translate.Engine
	Chat        *services.ChatService
	Translation *services.TranslationService
	Safety      *safety.Agent

	base        *zap.Logger
	apiLimiter  *ratelimit.MemoryRateLimiter
	authLimiter *ratelimit.MemoryRateLimiter
}

type options struct {
	provider  ai.Provider
	store     vector.Store
	searcher  search.Searcher
	local     translate.Engine
	skipIndex bool
}

// Option overrides a dependency New would otherwise build from config.
type Option func(*options)

func WithProvider(p ai.Provider) Option { return func(o *options) { o.provider = p } }

func WithStore(s vector.Store) Option { return func(o *options) { o.store = s } }

func WithSearcher(s search.Searcher) Option { return func(o *options) { o.searcher = s } }

// WithLocalEngine replaces the Lambda-hosted Terjman engine.
func WithLocalEngine(e translate.Engine) Option { return func(o *options) { o.local = e } }

// WithoutIndexing skips seeding and indexing the knowledge base at startup.
func WithoutIndexing() Option { return func(o *options) { o.skipIndex = true } }

// New opens the database and builds every service. Optional external
// services that fail to initialize are logged and left out; the matching
// endpoints then answer with their unavailable message.
func New(ctx context.Context, cfg *config.Config, base *zap.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if base == nil {
		base = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Config: cfg,
		Logger: services.NewZapLogger(base, "app"),
		base:   base,
	}

	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.Places = repository.NewPlaceRepository(db)

	a.Provider = o.provider
	if a.Provider == nil {
		a.Provider = a.buildProvider(ctx)
	}
	a.Store = o.store
	if a.Store == nil && a.Provider != nil {
		a.Store = a.buildStore()
	}

	if err := a.buildChat(); err != nil {
		a.closeDB()
		return nil, err
	}

	a.Searcher = o.searcher
	if a.Searcher == nil {
		ddg, err := search.NewDuckDuckGo(search.DefaultConfig())
		if err != nil {
			a.Logger.Error("web search disabled", "error", err)
		} else {
			a.Searcher = ddg
		}
	}
	a.buildSafety()

	a.Local = o.local
	if a.Local == nil && cfg.TerjmanFunctionName != "" {
		terjman, err := translate.NewTerjmanFromEnv(ctx, cfg.TerjmanFunctionName, cfg.AWSRegion)
		if err != nil {
			a.Logger.Error("Terjman engine disabled", "function", cfg.TerjmanFunctionName, "error", err)
		} else {
			a.Local = terjman
		}
	}
	if err := a.buildTranslation(); err != nil {
		a.closeDB()
		return nil, err
	}

	a.apiLimiter = ratelimit.NewMemoryRateLimiter(ratelimit.APIConfig(cfg.RateLimitPerMinute))
	a.authLimiter = ratelimit.NewMemoryRateLimiter(ratelimit.StrictAuthConfig())

	if !o.skipIndex {
		if _, err := a.IndexKnowledgeBase(ctx); err != nil {
			a.Logger.Warn("startup indexing incomplete", "error", err)
		}
	}

	a.Logger.Info("application ready",
		"llm", a.Provider != nil,
		"vector_store", storeName(a.Store),
		"retrieval", a.Chat.RetrievalActive(),
		"safety", a.Safety != nil,
		"terjman", a.Local != nil,
	)
	return a, nil
}

// IndexKnowledgeBase seeds the database from the knowledge base file and
// reindexes the RAG engine from every stored place.
func (a *App) IndexKnowledgeBase(ctx context.Context) (int, error) {
	places, err := knowledge.Load(a.Config.KnowledgeBasePath, a.Logger)
	if err != nil {
		return 0, err
	}
	if err := a.Chat.Seed(ctx, places); err != nil {
		return 0, err
	}
	return a.Chat.Reindex(ctx)
}

// Close releases background goroutines and the database.
func (a *App) Close() error {
	if a.apiLimiter != nil {
		a.apiLimiter.Close()
	}
	if a.authLimiter != nil {
		a.authLimiter.Close()
	}
	return a.closeDB()
}

func (a *App) closeDB() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (a *App) named(name string) services.Logger {
	return services.NewZapLogger(a.base, name)
}

func (a *App) buildProvider(ctx context.Context) ai.Provider {
	if !a.Config.LLMConfigured() {
		a.Logger.Warn("no LLM credentials configured; chat runs in keyword mode", "provider", a.Config.LLMProvider)
		return nil
	}

	aiCfg := ai.DefaultConfig()
	aiCfg.Provider = a.Config.LLMProvider
	aiCfg.Temperature = a.Config.LLMTemperature
	switch a.Config.LLMProvider {
	case ai.ProviderOpenAI:
		aiCfg.APIKey = a.Config.OpenAIAPIKey
		aiCfg.BaseURL = a.Config.OpenAIBaseURL
		aiCfg.Model = a.Config.OpenAIModel
		aiCfg.EmbeddingModel = a.Config.OpenAIEmbeddingModel
	default:
		aiCfg.APIKey = a.Config.GoogleAPIKey
		aiCfg.Model = a.Config.GeminiModel
		aiCfg.EmbeddingModel = a.Config.GeminiEmbeddingModel
	}

	provider, err := ai.New(ctx, aiCfg, a.named("ai"))
	if err != nil {
		a.Logger.Error("AI provider unavailable", "error", err)
		return nil
	}
	return provider
}

func (a *App) buildStore() vector.Store {
	if !a.Config.PineconeConfigured() {
		a.Logger.Info("Pinecone not configured, using in-memory vector store")
		return vector.NewMemoryStore()
	}

	vcfg := vector.DefaultConfig()
	vcfg.APIKey = a.Config.PineconeAPIKey
	vcfg.IndexHost = a.Config.PineconeIndexHost
	vcfg.Namespace = a.Config.PineconeNamespace

	store, err := vector.NewPineconeStore(vcfg, a.named("vector"))
	if err != nil {
		a.Logger.Error("Pinecone unavailable, using in-memory vector store", "error", err)
		return vector.NewMemoryStore()
	}
	return store
}

func (a *App) buildChat() error {
	ragCfg := rag.DefaultConfig()
	ragCfg.RetrievalTopK = a.Config.RetrievalTopK

	var (
		embedder  rag.Embedder
		completer rag.Completer
	)
	if a.Provider != nil {
		embedder = a.Provider
		completer = a.Provider
	}

	engine, err := rag.NewEngine(ragCfg, embedder, a.Store, completer, a.named("rag"))
	if err != nil {
		return fmt.Errorf("build RAG engine: %w", err)
	}
	a.Chat, err = services.NewChatService(engine, a.Places, a.named("chat"))
	return err
}

func (a *App) buildSafety() {
	if a.Searcher == nil {
		return
	}
	scfg := safety.DefaultConfig()
	scfg.QueryTemplate = a.Config.SafetyQueryTemplate
	scfg.MaxResults = a.Config.SafetyMaxResults
	if len(a.Config.SafetyDangerKeywords) > 0 {
		scfg.DangerKeywords = a.Config.SafetyDangerKeywords
	}

	agent, err := safety.NewAgent(scfg, a.Searcher, a.named("safety"))
	if err != nil {
		a.Logger.Error("safety agent disabled", "error", err)
		return
	}
	a.Safety = agent
}

func (a *App) buildTranslation() error {
	var llm translate.Completer
	if a.Provider != nil {
		llm = a.Provider
	}
	hybrid := translate.NewHybrid(a.Local, llm, a.named("translate"))

	var err error
	a.Translation, err = services.NewTranslationService(hybrid, repository.NewTranslationRepository(a.DB), a.named("translation"))
	return err
}

func storeName(s vector.Store) string {
	if s == nil {
		return "none"
	}
	return s.Name()
}
