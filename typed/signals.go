// Package typed provides typed facades over registered hub signals, so
// callers connect and emit with concrete argument types instead of
// variadic any slices. Each facade owns exactly one (emitter, signal id)
// pair; the untyped registry keeps doing the bookkeeping underneath.
//
// The argument unwrap is a plain type assertion: emitting through the
// facade guarantees the shape, but mixing typed and untyped emission on
// the same signal with mismatched arguments panics in the callback.
package typed

import "github.com/delaneyj/slotparty/hub"

// Signal0 is a typed facade over a signal emitted with no arguments.
type Signal0 struct {
	r        *hub.Registry
	emitter  any
	signalID any
}

func New0(r *hub.Registry, emitter, signalID any) (*Signal0, error) {
	if err := r.Register(emitter, signalID); err != nil {
		return nil, err
	}
	return &Signal0{r: r, emitter: emitter, signalID: signalID}, nil
}

func (s *Signal0) Connect(listener, connID any, fn func()) error {
	return s.r.Connect(s.emitter, s.signalID, listener, connID, hub.WithCallback(wrap0(fn)))
}

func (s *Signal0) ConnectOneshot(listener, connID any, fn func()) error {
	return s.r.Connect(s.emitter, s.signalID, listener, connID, hub.WithCallback(wrap0(fn)), hub.Oneshot())
}

func (s *Signal0) Disconnect(listener, connID any) error {
	return s.r.Disconnect(s.emitter, s.signalID, listener, connID)
}

func (s *Signal0) Emit() error {
	return s.r.Emit(s.emitter, s.signalID)
}

func (s *Signal0) Deregister() {
	s.r.Deregister(s.emitter, s.signalID)
}

// Signal1 is a typed facade over a signal emitted with one argument.
type Signal1[T0 any] struct {
	r        *hub.Registry
	emitter  any
	signalID any
}

func New1[T0 any](r *hub.Registry, emitter, signalID any) (*Signal1[T0], error) {
	if err := r.Register(emitter, signalID); err != nil {
		return nil, err
	}
	return &Signal1[T0]{r: r, emitter: emitter, signalID: signalID}, nil
}

func (s *Signal1[T0]) Connect(listener, connID any, fn func(T0)) error {
	return s.r.Connect(s.emitter, s.signalID, listener, connID, hub.WithCallback(wrap1(fn)))
}

func (s *Signal1[T0]) ConnectOneshot(listener, connID any, fn func(T0)) error {
	return s.r.Connect(s.emitter, s.signalID, listener, connID, hub.WithCallback(wrap1(fn)), hub.Oneshot())
}

func (s *Signal1[T0]) Disconnect(listener, connID any) error {
	return s.r.Disconnect(s.emitter, s.signalID, listener, connID)
}

func (s *Signal1[T0]) Emit(arg0 T0) error {
	return s.r.Emit(s.emitter, s.signalID, arg0)
}

func (s *Signal1[T0]) Deregister() {
	s.r.Deregister(s.emitter, s.signalID)
}

// Signal2 is a typed facade over a signal emitted with two arguments.
type Signal2[T0, T1 any] struct {
	r        *hub.Registry
	emitter  any
	signalID any
}

func New2[T0, T1 any](r *hub.Registry, emitter, signalID any) (*Signal2[T0, T1], error) {
	if err := r.Register(emitter, signalID); err != nil {
		return nil, err
	}
	return &Signal2[T0, T1]{r: r, emitter: emitter, signalID: signalID}, nil
}

func (s *Signal2[T0, T1]) Connect(listener, connID any, fn func(T0, T1)) error {
	return s.r.Connect(s.emitter, s.signalID, listener, connID, hub.WithCallback(wrap2(fn)))
}

func (s *Signal2[T0, T1]) ConnectOneshot(listener, connID any, fn func(T0, T1)) error {
	return s.r.Connect(s.emitter, s.signalID, listener, connID, hub.WithCallback(wrap2(fn)), hub.Oneshot())
}

func (s *Signal2[T0, T1]) Disconnect(listener, connID any) error {
	return s.r.Disconnect(s.emitter, s.signalID, listener, connID)
}

func (s *Signal2[T0, T1]) Emit(arg0 T0, arg1 T1) error {
	return s.r.Emit(s.emitter, s.signalID, arg0, arg1)
}

func (s *Signal2[T0, T1]) Deregister() {
	s.r.Deregister(s.emitter, s.signalID)
}

func wrap0(fn func()) hub.Callback {
	return func(args ...any) {
		fn()
	}
}

func wrap1[T0 any](fn func(T0)) hub.Callback {
	return func(args ...any) {
		fn(args[0].(T0))
	}
}

func wrap2[T0, T1 any](fn func(T0, T1)) hub.Callback {
	return func(args ...any) {
		fn(
			args[0].(T0),
			args[1].(T1),
		)
	}
}
