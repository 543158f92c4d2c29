package llm

import "context"

// Completer is the completion capability the answerer consumes. The
// credential travels per request because callers supply their own keys;
// failures come back as *ragErrors.ApiError.
type Completer interface {
	Complete(ctx context.Context, credential, systemPrompt, userPrompt string) (string, error)
}
