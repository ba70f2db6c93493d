package match

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
)

// scriptValidator runs a user-supplied JavaScript predicate against raw
// matches. The script must define `validate(match)` returning a truthy value
// to accept. Any script error, a missing function, or a falsy return rejects
// the match; script failures never propagate to the caller.
type scriptValidator struct {
	ctx    context.Context
	source string
}

func newScriptValidator(ctx context.Context, source string) *scriptValidator {
	if ctx == nil {
		ctx = context.Background()
	}
	return &scriptValidator{ctx: ctx, source: source}
}

func (v *scriptValidator) Validate(matched string) bool {
	ok, err := v.run(matched)
	if err != nil {
		return false
	}
	return ok
}

func (v *scriptValidator) run(matched string) (bool, error) {
	if err := v.ctx.Err(); err != nil {
		return false, err
	}
	vm := goja.New()

	done := make(chan struct{})
	defer close(done)
	defer vm.ClearInterrupt()

	go func() {
		select {
		case <-v.ctx.Done():
			vm.Interrupt(v.ctx.Err())
		case <-done:
		}
	}()

	if _, err := vm.RunString(v.source); err != nil {
		return false, fmt.Errorf("script: %w", err)
	}
	if err := vm.Set("__match", matched); err != nil {
		return false, fmt.Errorf("script: %w", err)
	}
	result, err := vm.RunString("validate(__match)")
	if err != nil {
		return false, fmt.Errorf("script: %w", err)
	}
	return result.ToBoolean(), nil
}
