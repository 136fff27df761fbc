package due

import (
	"reflect"
	"runtime"
)

// Dcite returns a wrapping combinator for ref: given any function value, it
// produces a new function of identical signature that records one cite
// before each delegation to the original.
//
// The cite happens unconditionally on every invocation, before the wrapped
// function runs, so uses are counted even when the wrapped function later
// fails or panics. The wrapped function's arguments and results pass
// through unchanged.
//
// When no level option is supplied, the level is deduced once at decoration
// time from the wrapped function's qualified name, e.g.
// "func github.com/acme/kit/stats.Fit".
//
// A cite failure inside the wrapper (for example an unregistered key) must
// not disrupt the wrapped call; it is logged and the call proceeds.
//
// Dcite panics if fn is not a function. For compile-time typing of common
// arities, see [Dcite0], [Dcite1], and [Dcite2].
func (c *Collector) Dcite(ref any, opts ...CiteOption) func(fn any) any {
	o := resolveCiteOptions(opts)
	return func(fn any) any {
		fv := reflect.ValueOf(fn)
		if fv.Kind() != reflect.Func {
			panic("due: Dcite target must be a function")
		}
		call := o
		if !call.levelSet {
			call.level = funcLevel(fv)
		}
		wrapped := reflect.MakeFunc(fv.Type(), func(args []reflect.Value) []reflect.Value {
			if _, err := c.cite(ref, call); err != nil {
				c.logger.Error("citation not recorded", "err", err)
			}
			if fv.Type().IsVariadic() {
				return fv.CallSlice(args)
			}
			return fv.Call(args)
		})
		return wrapped.Interface()
	}
}

// funcLevel derives the call-site context from a function value:
// "func <package-qualified-name>".
func funcLevel(fv reflect.Value) string {
	f := runtime.FuncForPC(fv.Pointer())
	if f == nil {
		return "func <unknown>"
	}
	return "func " + f.Name()
}

// Dcite0 wraps a niladic function, recording one cite per invocation.
// See [Collector.Dcite] for level deduction and failure semantics.
func Dcite0[R any](c Citer, ref any, fn func() R, opts ...CiteOption) func() R {
	return c.Dcite(ref, opts...)(fn).(func() R)
}

// Dcite1 wraps a one-argument function, recording one cite per invocation.
func Dcite1[A, R any](c Citer, ref any, fn func(A) R, opts ...CiteOption) func(A) R {
	return c.Dcite(ref, opts...)(fn).(func(A) R)
}

// Dcite2 wraps a two-argument function, recording one cite per invocation.
func Dcite2[A, B, R any](c Citer, ref any, fn func(A, B) R, opts ...CiteOption) func(A, B) R {
	return c.Dcite(ref, opts...)(fn).(func(A, B) R)
}
