package ai

import "context"

// Runtime is a minimal interface implemented by model backends.
type Runtime interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// ProviderOllama selects the local Ollama runtime.
const ProviderOllama = "ollama"
