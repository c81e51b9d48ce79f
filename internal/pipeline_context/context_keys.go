package pipeline_context

import (
	"context"

	"github.com/brandkit/asset-pipeline-go/internal/uuid"
)

type ctxKey string

const (
	TenantIDKey ctxKey = "tenantID"
	AssetIDKey  ctxKey = "assetID"
)

func WithTenantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, id)
}

func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return id, ok
}

func WithAssetID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, AssetIDKey, id)
}

func AssetIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(AssetIDKey).(uuid.UUID)
	return id, ok
}
