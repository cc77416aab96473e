package generator

// Result is the outcome of one FSM step. A recoverable result carries a
// usable fallback value next to the error; a fatal one ends the run.
type Result[T any] struct {
	Value T
	Err   error
	Fatal bool
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Recoverable[T any](fallback T, err error) Result[T] {
	return Result[T]{Value: fallback, Err: err}
}

func Fatal[T any](err error) Result[T] {
	return Result[T]{Err: err, Fatal: true}
}

// Failed reports whether the step produced an error of either kind.
func (r Result[T]) Failed() bool { return r.Err != nil }
