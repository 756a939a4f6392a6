package steps

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/branchwell/resolve/request"
)

// Result implements ResultPlugin: the terminal sink tapped directly onto
// the "resolved" hook. It applies the Restrictions option, recovered from
// enhanced-resolve's own option of the same name — a final resolved path
// that matches none of the configured glob patterns fails with a
// no-resolution error — and otherwise returns req as the pipeline's
// answer.
func Result(restrictions []string) request.Step {
	return func(_ context.Context, _ request.Engine, req request.Request, _ *request.Context) request.Result {
		if len(restrictions) > 0 {
			matched := false
			for _, pattern := range restrictions {
				if ok, _ := doublestar.Match(pattern, req.Path); ok {
					matched = true
					break
				}
			}
			if !matched {
				return request.Failed(request.NewError(request.KindNoResolution, req, "excluded by restrictions", nil))
			}
		}
		return request.Resolved(req)
	}
}
