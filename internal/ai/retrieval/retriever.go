// Package retrieval ranks corpus segments against a query by embedding
// similarity. It backs the company-specific portions of cover letter
// generation.
package retrieval

import (
	"context"
	"math"
	"sort"

	"github.com/autocareer/autocareer/internal/ai/embeddings"
	"github.com/autocareer/autocareer/pkg/kernel"
	"github.com/autocareer/autocareer/pkg/logx"
)

// Tuned defaults; carried in Config rather than hard-coded because their
// derivation is empirical
const (
	DefaultChunkSize       = 500
	DefaultChunkOverlap    = 50
	DefaultTopK            = 3
	DefaultSimilarityFloor = 0.85
)

// Chunk is an ephemeral (text, similarity) pair produced per retrieval call
type Chunk struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// Config tunes chunking and ranking
type Config struct {
	ChunkSize       int
	ChunkOverlap    int
	TopK            int
	SimilarityFloor float64
}

// DefaultConfig returns the standard retrieval tuning
func DefaultConfig() Config {
	return Config{
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		TopK:            DefaultTopK,
		SimilarityFloor: DefaultSimilarityFloor,
	}
}

// Retriever ranks corpus chunks by cosine similarity to a query
type Retriever struct {
	embedder embeddings.Embedder
	cfg      Config
}

// NewRetriever creates a retriever over the given embedder
func NewRetriever(embedder embeddings.Embedder, cfg Config) *Retriever {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 10
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.SimilarityFloor <= 0 {
		cfg.SimilarityFloor = DefaultSimilarityFloor
	}

	return &Retriever{embedder: embedder, cfg: cfg}
}

// Retrieve returns up to k chunks of corpus ordered by descending similarity
// to query. Chunks below the similarity floor are dropped even when fewer
// than k remain. An empty corpus or a failing embedder yields an empty
// result, never an error.
func (r *Retriever) Retrieve(ctx context.Context, corpus, query string, k int) []Chunk {
	if corpus == "" || query == "" {
		return nil
	}
	if k <= 0 {
		k = r.cfg.TopK
	}

	texts := ChunkText(corpus, r.cfg.ChunkSize, r.cfg.ChunkOverlap)
	if len(texts) == 0 {
		return nil
	}

	queryVec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		logx.Warnf("retrieval: query embedding failed: %v", err)
		return nil
	}

	chunkVecs, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		logx.Warnf("retrieval: corpus embedding failed: %v", err)
		return nil
	}
	if len(chunkVecs) != len(texts) {
		logx.Warnf("retrieval: embedder returned %d vectors for %d chunks", len(chunkVecs), len(texts))
		return nil
	}

	scored := make([]Chunk, 0, len(texts))
	for i, text := range texts {
		sim := CosineSimilarity(queryVec, chunkVecs[i])
		if sim >= r.cfg.SimilarityFloor {
			scored = append(scored, Chunk{Text: text, Similarity: sim})
		}
	}

	// Stable sort keeps corpus order for equal similarities, so identical
	// inputs always produce the identical chunk sequence
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-magnitude vectors score 0.
func CosineSimilarity(a, b kernel.Embedding) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
