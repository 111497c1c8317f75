package retriever

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/openai/openai-go"
)

// OpenAIEmbedder produces embeddings through the OpenAI embeddings API.
// Prepare embeds one corpus probe to learn the model's dimensionality.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     openai.EmbeddingModel
	dimension int
}

// NewOpenAIEmbedder creates an embedder using the official client (API key
// from the environment). An empty model selects text-embedding-3-small.
func NewOpenAIEmbedder(model openai.EmbeddingModel) *OpenAIEmbedder {
	client := openai.NewClient()
	return NewOpenAIEmbedderFromClient(&client, model)
}

// NewOpenAIEmbedderFromClient creates an embedder from an existing client.
func NewOpenAIEmbedderFromClient(client *openai.Client, model openai.EmbeddingModel) *OpenAIEmbedder {
	if model == "" {
		model = openai.EmbeddingModelTextEmbedding3Small
	}
	return &OpenAIEmbedder{client: client, model: model}
}

// Name returns the identifier of this embedder implementation.
func (e *OpenAIEmbedder) Name() string { return "openai:" + string(e.model) }

// Prepare probes the API with the first corpus entry to record the vector
// dimension. No corpus statistics are required.
func (e *OpenAIEmbedder) Prepare(ctx context.Context, corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for openai prepare")
	}
	vec, err := e.Embed(ctx, corpus[0])
	if err != nil {
		return err
	}
	e.dimension = len(vec)
	return nil
}

// Dimension returns the dimensionality learned during Prepare.
func (e *OpenAIEmbedder) Dimension() int { return e.dimension }

// Embed requests an L2-normalized embedding for the given text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: e.model,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings api error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("openai embeddings api returned no data")
	}
	vec := resp.Data[0].Embedding
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	if norm = math.Sqrt(norm); norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
