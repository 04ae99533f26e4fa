package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocareer/autocareer/pkg/kernel"
)

type fakeEmbedder struct {
	query    kernel.Embedding
	batch    []kernel.Embedding
	queryErr error
	batchErr error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) (kernel.Embedding, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.query, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([]kernel.Embedding, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.batch, nil
}

// nine words with no sentence breaks, so a chunk size of three yields
// exactly three chunks
const testCorpus = "alpha beta gamma delta epsilon zeta eta theta iota"

func testConfig() Config {
	return Config{ChunkSize: 3, ChunkOverlap: 0, TopK: 3, SimilarityFloor: 0.5}
}

func TestRetrieve_RanksByDescendingSimilarity(t *testing.T) {
	embedder := &fakeEmbedder{
		query: kernel.Embedding{1, 0},
		batch: []kernel.Embedding{
			{0.6, 0.8}, // sim 0.6
			{1, 0},     // sim 1.0
			{0, 1},     // sim 0.0, below floor
		},
	}
	r := NewRetriever(embedder, testConfig())

	chunks := r.Retrieve(context.Background(), testCorpus, "query", 2)

	require.Len(t, chunks, 2)
	assert.Equal(t, "delta epsilon zeta", chunks[0].Text)
	assert.InDelta(t, 1.0, chunks[0].Similarity, 1e-6)
	assert.Equal(t, "alpha beta gamma", chunks[1].Text)
	// The embeddings are float32, so allow for conversion error
	assert.InDelta(t, 0.6, chunks[1].Similarity, 1e-6)
}

func TestRetrieve_FloorDropsWeakChunksEvenBelowK(t *testing.T) {
	embedder := &fakeEmbedder{
		query: kernel.Embedding{1, 0},
		batch: []kernel.Embedding{
			{0, 1},
			{0, 1},
			{1, 0},
		},
	}
	r := NewRetriever(embedder, testConfig())

	chunks := r.Retrieve(context.Background(), testCorpus, "query", 3)

	require.Len(t, chunks, 1)
	assert.Equal(t, "eta theta iota", chunks[0].Text)
}

func TestRetrieve_TiesKeepCorpusOrder(t *testing.T) {
	embedder := &fakeEmbedder{
		query: kernel.Embedding{1, 0},
		batch: []kernel.Embedding{
			{1, 0},
			{1, 0},
			{1, 0},
		},
	}
	r := NewRetriever(embedder, testConfig())

	chunks := r.Retrieve(context.Background(), testCorpus, "query", 3)

	require.Len(t, chunks, 3)
	assert.Equal(t, "alpha beta gamma", chunks[0].Text)
	assert.Equal(t, "delta epsilon zeta", chunks[1].Text)
	assert.Equal(t, "eta theta iota", chunks[2].Text)
}

func TestRetrieve_Idempotent(t *testing.T) {
	embedder := &fakeEmbedder{
		query: kernel.Embedding{1, 0},
		batch: []kernel.Embedding{
			{0.6, 0.8},
			{1, 0},
			{0.8, 0.6},
		},
	}
	r := NewRetriever(embedder, testConfig())

	first := r.Retrieve(context.Background(), testCorpus, "query", 3)
	second := r.Retrieve(context.Background(), testCorpus, "query", 3)

	assert.Equal(t, first, second)
}

func TestRetrieve_EmptyInputs(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{}, testConfig())

	assert.Nil(t, r.Retrieve(context.Background(), "", "query", 3))
	assert.Nil(t, r.Retrieve(context.Background(), testCorpus, "", 3))
}

func TestRetrieve_EmbedderFailureYieldsEmptyNotError(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{queryErr: errors.New("boom")}, testConfig())
	assert.Nil(t, r.Retrieve(context.Background(), testCorpus, "query", 3))

	r = NewRetriever(&fakeEmbedder{
		query:    kernel.Embedding{1, 0},
		batchErr: errors.New("boom"),
	}, testConfig())
	assert.Nil(t, r.Retrieve(context.Background(), testCorpus, "query", 3))
}

func TestRetrieve_VectorCountMismatchYieldsEmpty(t *testing.T) {
	embedder := &fakeEmbedder{
		query: kernel.Embedding{1, 0},
		batch: []kernel.Embedding{{1, 0}},
	}
	r := NewRetriever(embedder, testConfig())

	assert.Nil(t, r.Retrieve(context.Background(), testCorpus, "query", 3))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity(kernel.Embedding{1, 2, 3}, kernel.Embedding{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity(kernel.Embedding{1, 0}, kernel.Embedding{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity(kernel.Embedding{1, 0}, kernel.Embedding{-1, 0}), 1e-9)

	// Degenerate inputs score zero instead of erroring
	assert.Zero(t, CosineSimilarity(kernel.Embedding{}, kernel.Embedding{}))
	assert.Zero(t, CosineSimilarity(kernel.Embedding{1, 2}, kernel.Embedding{1}))
	assert.Zero(t, CosineSimilarity(kernel.Embedding{0, 0}, kernel.Embedding{1, 1}))
}
