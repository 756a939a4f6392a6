package steps

import (
	"context"
	"strings"

	"github.com/branchwell/resolve/request"
)

// matchAlias reports whether req matches entry under AliasPlugin's rules:
// a name ending in "$" (OnlyModule) matches only an exact request, with the
// trailing "$" itself not compared; otherwise it matches the request itself
// or any subpath of it.
func matchAlias(entryName string, onlyModule bool, req string) (matched bool, rest string) {
	if onlyModule {
		return req == strings.TrimSuffix(entryName, "$"), ""
	}
	if req == entryName {
		return true, ""
	}
	if strings.HasPrefix(req, entryName+"/") {
		return true, req[len(entryName):]
	}
	return false, ""
}

// Alias implements AliasPlugin: tries each configured entry in order; the
// first that matches either fails (alias: false), forks once per
// replacement string into targetHook (first fork to succeed wins), or —
// if every replacement would just reproduce the original request — yields
// to prevent self-recursion. Entries that don't match yield to the next
// entry/tap.
func Alias(entries []request.AliasEntry, targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		for _, entry := range entries {
			matched, rest := matchAlias(entry.Name, entry.OnlyModule, req.Request)
			if !matched {
				continue
			}
			if entry.Ignore {
				return request.Failed(request.NewError(request.KindAliasedToFalse, req, "aliased to false: "+entry.Name, nil))
			}

			var errs []error
			for _, replacement := range entry.Alias {
				rewritten := replacement + rest
				if rewritten == req.Request {
					continue // would just recreate the original request
				}
				next := req.With(func(cp *request.Request) { cp.Request = rewritten })
				res, err := e.DoResolve(ctx, targetHook, next, "aliased "+entry.Name+" -> "+replacement, rctx)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if res != nil {
					return request.Resolved(*res)
				}
			}
			if err := request.MostInformative(errs); err != nil {
				return request.Failed(err)
			}
			return request.Yield()
		}
		return request.Yield()
	}
}

// AliasField implements AliasFieldPlugin: consults a named field (e.g.
// "browser") inside the request's attached description file, applying the
// same match/rewrite rules as Alias but keyed by RelativePath and scoped
// to entries found in that field's object value.
func AliasField(fieldNames []string, targetHook string) request.Step {
	return func(ctx context.Context, e request.Engine, req request.Request, rctx *request.Context) request.Result {
		if req.DescriptionFileData == nil {
			return request.Yield()
		}
		for _, fieldName := range fieldNames {
			raw, ok := req.DescriptionFileData.Field(fieldName)
			if !ok {
				continue
			}
			table, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			key := req.RelativePath
			if key == "" {
				key = req.Request
			}
			value, ok := lookupAliasField(table, key)
			if !ok {
				continue
			}

			switch v := value.(type) {
			case bool:
				if !v {
					return request.Failed(request.NewError(request.KindAliasedToFalse, req, "aliased to false via field "+fieldName, nil))
				}
			case string:
				if v == key {
					continue
				}
				next := req.With(func(cp *request.Request) { cp.Request = v })
				return fork(ctx, e, targetHook, next, "aliased via field "+fieldName, rctx)
			}
		}
		return request.Yield()
	}
}

// lookupAliasField matches key against table the same way Alias matches a
// plain alias entry: exact key, or a prefix entry whose remainder is
// appended to the mapped value.
func lookupAliasField(table map[string]any, key string) (any, bool) {
	if v, ok := table[key]; ok {
		return v, true
	}
	for name, v := range table {
		if strings.HasPrefix(key, name+"/") {
			if s, ok := v.(string); ok {
				return s + key[len(name):], true
			}
		}
	}
	return nil, false
}
