package embedding

import "context"

// Task types passed to providers that distinguish document from query
// embeddings (Gemini honors them; others ignore them).
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// Name and Version identify the provider and model; together with the text
// they form the vector cache key, so a model change invalidates cached
// vectors automatically.
type EmbeddingProvider interface {
	Name() string
	Version() string
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}
