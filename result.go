package invoke

import "reflect"

// Result holds the outputs of a constructor, method or function call, or
// the error that prevented the call.
type Result struct {
	out []reflect.Value

	// err is the resolution, validation or invocation failure, or the
	// non-nil final error output of the callee.
	err error
}

func resultError(err error) Result {
	return Result{err: err}
}

// newResult wraps the outputs of a successful reflect call. A final output
// of type error that is non-nil becomes the result error.
func newResult(out []reflect.Value) Result {
	r := Result{out: out}
	if n := len(out); n > 0 && out[n-1].Type() == errType {
		if err, ok := out[n-1].Interface().(error); ok && err != nil {
			r.err = err
		}
	}

	return r
}

// Err returns the error of the call, if any. Failures to resolve, validate
// or invoke are reported here, as is the error returned by the callee.
func (r *Result) Err() error {
	return r.err
}

// Out returns the i'th output (zero-indexed). This will panic if i >= Len,
// so callers should check Len first.
func (r *Result) Out(i int) interface{} {
	return r.out[i].Interface()
}

// Len returns the number of outputs, including a final error output.
func (r *Result) Len() int {
	return len(r.out)
}

// Values returns every output in order, excluding a final error output.
func (r *Result) Values() []interface{} {
	out := r.out
	if n := len(out); n > 0 && out[n-1].Type() == errType {
		out = out[:n-1]
	}

	result := make([]interface{}, len(out))
	for i, v := range out {
		result[i] = v.Interface()
	}

	return result
}
