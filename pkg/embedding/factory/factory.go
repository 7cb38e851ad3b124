package factory

import (
	"fmt"

	"decision-framework-be/pkg/embedding"
	"decision-framework-be/pkg/embedding/jina"
)

// ProviderSettings carries the per-provider credentials and endpoints needed
// to build a ranked chain from configuration names.
type ProviderSettings struct {
	GeminiApiKey  string
	JinaApiKey    string
	OllamaBaseURL string
	OllamaModel   string
}

// NewProviders builds providers for the given ranked names. Order is
// preserved: the first name is the primary provider.
func NewProviders(names []string, settings ProviderSettings) ([]embedding.EmbeddingProvider, error) {
	providers := make([]embedding.EmbeddingProvider, 0, len(names))
	for _, name := range names {
		switch name {
		case "gemini":
			providers = append(providers, embedding.NewGeminiProvider(settings.GeminiApiKey))
		case "jina":
			providers = append(providers, jina.NewJinaProvider(settings.JinaApiKey))
		case "ollama":
			providers = append(providers, embedding.NewOllamaProvider(settings.OllamaBaseURL, settings.OllamaModel))
		default:
			return nil, fmt.Errorf("unsupported embedding provider: %s", name)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no embedding providers configured")
	}
	return providers, nil
}
