// Package view holds the per-mount page state and the projections that turn
// backend payloads into display strings.
package view

import "context"

// Status is the lifecycle position of a page.
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "loading"
	}
}

// State is a three-state container. The zero value is Loading; Ready and
// Failed are terminal.
type State[T any] struct {
	status Status
	data   T
	err    error
}

// Resolve moves a Loading state to Ready or Failed depending on err. It
// reports false and changes nothing when the state was already resolved.
func (s *State[T]) Resolve(data T, err error) bool {
	if s.status != Loading {
		return false
	}
	if err != nil {
		s.status = Failed
		s.err = err
		return true
	}
	s.status = Ready
	s.data = data
	return true
}

func (s State[T]) Status() Status { return s.status }
func (s State[T]) Data() T        { return s.data }
func (s State[T]) Err() error     { return s.err }

// Load performs exactly one fetch and returns the resolved state.
func Load[T any](ctx context.Context, fetch func(context.Context) (T, error)) State[T] {
	var s State[T]
	s.Resolve(fetch(ctx))
	return s
}

// Page is what templates render: a status, the projected view when Ready,
// and the page's static message otherwise.
type Page[V any] struct {
	Status  Status
	View    V
	Message string
}

func (p Page[V]) IsLoading() bool { return p.Status == Loading }
func (p Page[V]) IsReady() bool   { return p.Status == Ready }
func (p Page[V]) IsFailed() bool  { return p.Status == Failed }

// Project maps a resolved state onto a Page. Failed pages carry failMsg,
// never the underlying error.
func Project[T, V any](s State[T], failMsg string, fn func(T) V) Page[V] {
	switch s.Status() {
	case Ready:
		return Page[V]{Status: Ready, View: fn(s.Data())}
	case Failed:
		return Page[V]{Status: Failed, Message: failMsg}
	default:
		return Page[V]{Status: Loading, Message: MsgLoading}
	}
}
