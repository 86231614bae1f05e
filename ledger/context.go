package ledger

import (
	"context"
	"fmt"
)

type contextKey int

const actorContextKey contextKey = 0

// WithActor binds the calling account to the context. Authenticating that
// account is the transport's problem, not this service's.
func WithActor(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, actorContextKey, account)
}

func actorFromContext(ctx context.Context) (string, error) {
	account, _ := ctx.Value(actorContextKey).(string)
	if account == "" {
		return "", fmt.Errorf("no actor in context")
	}
	return account, nil
}
