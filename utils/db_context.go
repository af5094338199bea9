package utils

import (
	"context"
	"time"
)

// QueryTimeout bounds a single request's database work.
const QueryTimeout = 10 * time.Second

// RenderTimeout bounds asset loading, layout and upload of one PDF.
const RenderTimeout = 60 * time.Second

// GetQueryContext returns a context with timeout derived from parentCtx, or from
// the background context when parentCtx is nil.
func GetQueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

func GetDefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, QueryTimeout)
}

func GetRenderContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, RenderTimeout)
}
