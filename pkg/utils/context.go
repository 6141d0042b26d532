package utils

import (
	"context"

	"storefront-admin/internal/data/entity"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
	TokenKey contextKey = "token"
)

// GetActorFromContext returns the guest actor when no session was resolved.
func GetActorFromContext(ctx context.Context) entity.Actor {
	actor, ok := ctx.Value(ActorKey).(entity.Actor)
	if !ok {
		return entity.GuestActor()
	}
	return actor
}

func SetActorContext(ctx context.Context, actor entity.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	ctx = context.WithValue(ctx, TokenKey, token)
	return ctx
}
