package ai

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// geminiModels is the part of genai.Models the provider calls.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// GeminiProvider talks to the Gemini API through the genai SDK.
type GeminiProvider struct {
	config *Config
	models geminiModels
}

func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, NewProviderError("init", "failed to create genai client", err)
	}
	return &GeminiProvider{config: config, models: client.Models}, nil
}

func (p *GeminiProvider) Name() string { return ProviderGemini }

func (p *GeminiProvider) GetCompletion(ctx context.Context, prompt string) (string, error) {
	resp, err := p.models.GenerateContent(ctx,
		p.config.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](p.config.Temperature),
		},
	)
	if err != nil {
		return "", NewProviderError("completion", "generate content failed", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", newEmptyResponseError("completion", p.config.Model)
	}
	return text, nil
}

func (p *GeminiProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := p.embed(ctx, []string{text}, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// CreateEmbeddings embeds documents for indexing, EmbedBatchSize texts per call.
func (p *GeminiProvider) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	return p.embed(ctx, texts, "RETRIEVAL_DOCUMENT")
}

func (p *GeminiProvider) embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, &AIError{Type: ErrTypeValidation, Operation: "embedding", Message: "no input texts"}
	}

	size := p.config.EmbedBatchSize
	if size <= 0 {
		size = defaultEmbedBatchSize
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := p.embedBatch(ctx, texts[start:end], taskType)
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (p *GeminiProvider) embedBatch(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := p.models.EmbedContent(ctx,
		p.config.EmbeddingModel,
		contents,
		&genai.EmbedContentConfig{TaskType: taskType},
	)
	if err != nil {
		return nil, NewProviderError("embedding", "embed content failed", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, newEmptyResponseError("embedding", p.config.EmbeddingModel)
	}

	out := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, newEmptyResponseError("embedding", p.config.EmbeddingModel)
		}
		out[i] = emb.Values
	}
	return out, nil
}
