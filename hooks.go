// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolve

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/branchwell/resolve/request"
)

// hookRegistry maps a hook name to its ordered tap list. Hooks are created
// once, by ensureHook, and never destroyed.
type hookRegistry struct {
	mu    sync.RWMutex
	hooks map[string][]request.Step
}

func newHookRegistry() *hookRegistry {
	return &hookRegistry{hooks: map[string][]request.Step{}}
}

// ensureHook creates an empty tap list for name if none exists yet. A fork
// into a name that was never ensured or tapped dispatches to no taps.
func (r *hookRegistry) ensureHook(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hooks[name]; !ok {
		r.hooks[name] = nil
	}
}

// tap appends step to hook's ordered list. Order of tap calls is the order
// taps are tried, so factory wiring order is load-bearing.
func (r *hookRegistry) tap(hook string, step request.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[hook] = append(r.hooks[hook], step)
}

// dispatch runs hook in async-series-bail discipline: taps are tried
// strictly in registration order; the first to produce a non-yield Result
// (a resolution or an error) short-circuits the rest. Every tap yielding
// produces a nil, nil outcome.
func (r *hookRegistry) dispatch(ctx context.Context, e request.Engine, hook string, req request.Request, rctx *request.Context) (*request.Request, error) {
	r.mu.RLock()
	taps := r.hooks[hook]
	r.mu.RUnlock()

	for _, tap := range taps {
		result := r.invokeTap(ctx, e, hook, tap, req, rctx)
		if result.Yield {
			continue
		}
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Resolved, nil
	}
	return nil, nil
}

// invokeTap calls tap, converting a recovered panic into a request.Result
// carrying a PanicError: a user-supplied plugin tap must not be allowed to
// bring down a concurrent batch of unrelated resolutions.
func (r *hookRegistry) invokeTap(ctx context.Context, e request.Engine, hook string, tap request.Step, req request.Request, rctx *request.Context) (result request.Result) {
	defer func() {
		if v := recover(); v != nil {
			result = request.Failed(&request.PanicError{Hook: hook, Value: v, Stack: string(debug.Stack())})
		}
	}()
	return tap(ctx, e, req, rctx)
}
