package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// DefaultTimeout bounds a single embedding call
const DefaultTimeout = 30 * time.Second

// Embedder turns text into fixed-length vectors. The retriever depends on
// this interface so tests can swap in a deterministic implementation.
type Embedder interface {
	Embed(ctx context.Context, text string) (kernel.Embedding, error)
	EmbedBatch(ctx context.Context, texts []string) ([]kernel.Embedding, error)
}

// Generator creates embeddings through the OpenAI API
type Generator struct {
	client *openai.Client
}

// NewGenerator creates an embeddings generator
func NewGenerator(apiKey string) *Generator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Generator{client: &client}
}

// Embed creates an embedding vector for a single text
func (g *Generator) Embed(ctx context.Context, text string) (kernel.Embedding, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch creates embeddings for multiple texts in one call
func (g *Generator) EmbedBatch(ctx context.Context, texts []string) ([]kernel.Embedding, error) {
	valid := make([]string, 0, len(texts))
	for _, text := range texts {
		if text != "" {
			valid = append(valid, text)
		}
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("no non-empty texts provided")
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: valid,
		},
		Model: openai.EmbeddingModelTextEmbedding3Small,
	})
	if err != nil {
		return nil, fmt.Errorf("generate embeddings: %w", err)
	}

	if len(resp.Data) != len(valid) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d, got %d", len(valid), len(resp.Data))
	}

	vectors := make([]kernel.Embedding, len(resp.Data))
	for i, data := range resp.Data {
		vec := make(kernel.Embedding, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}
