package shared

import "context"

// Principal identifies the authenticated caller for the current request.
type Principal struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	Region    string `json:"region"`
	SessionID string `json:"session_id"`
}

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}
