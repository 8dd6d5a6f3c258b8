package ports

import "context"

type AIClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
