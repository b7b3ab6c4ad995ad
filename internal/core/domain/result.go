package domain

// Result is the envelope returned by auth calls and post mutations: the
// decoded body, the HTTP status and the role field found in the body.
type Result[T any] struct {
	Data       T
	StatusCode int
	Role       string
}

// OK reports whether the call ended with exactly 200. Callers decide on
// navigation and session updates with it.
func (r *Result[T]) OK() bool {
	return r != nil && r.StatusCode == 200
}
