package steps

import (
	"context"

	"github.com/branchwell/resolve/request"
)

// TryNext implements TryNextPlugin: unconditionally forks the same
// request into targetHook, annotated with a human-readable message.
func TryNext(targetHook, message string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		return fork(ctx, e, targetHook, req, message, rctx)
	}
}

// Next implements NextPlugin: unconditionally forks the same request into
// targetHook without modification or commentary.
func Next(targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		return fork(ctx, e, targetHook, req, "next", rctx)
	}
}
