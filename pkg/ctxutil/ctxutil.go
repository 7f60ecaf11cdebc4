package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
)

type ctxKey string

const (
	grantKey     ctxKey = "delegation_grant"
	requestIDKey ctxKey = "request_id"
)

// WithGrant stores the resolved delegation grant in the context.
func WithGrant(ctx context.Context, grant domain.Grant) context.Context {
	return context.WithValue(ctx, grantKey, grant)
}

// GrantFromCtx extracts the delegation grant from the context.
// Returns false if no grant is present.
func GrantFromCtx(ctx context.Context) (domain.Grant, bool) {
	grant, ok := ctx.Value(grantKey).(domain.Grant)
	if !ok || grant.DelegateID == uuid.Nil {
		return domain.Grant{}, false
	}
	return grant, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
