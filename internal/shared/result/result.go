// Package result models best-effort per-item outcomes.
package result

// Result carries either a value or a soft failure. A failed Result is an
// expected outcome (for example a list item missing a field), not a fault.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successfully extracted value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps a soft failure.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// IsOk reports whether the Result carries a value.
func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

// Partition splits results into values and failures, keeping input order.
func Partition[T any](rs []Result[T]) ([]T, []error) {
	values := make([]T, 0, len(rs))
	var errs []error
	for _, r := range rs {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		values = append(values, r.Value)
	}
	return values, errs
}
