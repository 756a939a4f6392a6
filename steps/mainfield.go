package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/branchwell/resolve/request"
)

// MainField implements MainFieldPlugin: only applies when req.Path equals
// the attached description file's root and this field hasn't already been
// tried for that description file (tracked via a context marker, to break
// cycles when a main field points back at the directory itself). Reads a
// main-field value — a plain string, or a list naming a path through
// nested objects — rejects "." and "./", optionally forces a "./" prefix
// (ForceRelative), and forks into targetHook ("resolve-in-existing-directory").
func MainField(entries []request.MainFieldEntry, targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if req.DescriptionFileData == nil || req.Path != req.DescriptionFileRoot {
			return request.Yield()
		}
		marker := "mainField-tried:" + req.DescriptionFileRoot
		if req.Marked(marker) {
			return request.Yield()
		}

		for _, entry := range entries {
			value, ok := lookupMainField(req.DescriptionFileData.Data, entry.Name)
			if !ok {
				continue
			}
			if value == "." || value == "./" {
				continue
			}
			if entry.ForceRelative && !strings.HasPrefix(value, "./") && !strings.HasPrefix(value, "../") {
				value = "./" + value
			}

			next := req.Mark(marker)
			next = next.With(func(cp *request.Request) { cp.Request = value })
			res, err := e.DoResolve(ctx, targetHook, next, fmt.Sprintf("main field %v = %s", entry.Name, value), rctx)
			if err != nil {
				return request.Failed(err)
			}
			if res != nil {
				return request.Resolved(*res)
			}
		}
		return request.Yield()
	}
}

// lookupMainField traverses data following path, the first key against
// the top-level object and each subsequent key against the previous
// step's nested object value, returning the final string found.
func lookupMainField(data map[string]any, path []string) (string, bool) {
	if len(path) == 0 {
		return "", false
	}
	var cur any = data
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[key]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}
