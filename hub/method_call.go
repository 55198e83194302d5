package hub

import (
	"fmt"
	"reflect"
)

// methodCallback synthesizes the default callback used when Connect is
// given none: the connection id names an exported method on the
// listener, which is invoked with the emission arguments. Resolution
// happens at connect time so a bad binding fails the Connect call
// rather than a later Emit.
func methodCallback(listener any, connID ident) (Callback, error) {
	if connID.isNum {
		return nil, &InvalidArgumentError{
			Role:   "callback",
			Reason: "none supplied and connection id is not a method name",
		}
	}
	m := reflect.ValueOf(listener).MethodByName(connID.str)
	if !m.IsValid() {
		return nil, &InvalidArgumentError{
			Role:   "callback",
			Reason: fmt.Sprintf("listener %T has no method %s", listener, connID),
		}
	}
	mt := m.Type()
	return func(args ...any) {
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			if a != nil {
				in[i] = reflect.ValueOf(a)
				continue
			}
			// Untyped nil needs the parameter's zero value.
			switch {
			case mt.IsVariadic() && i >= mt.NumIn()-1:
				in[i] = reflect.Zero(mt.In(mt.NumIn() - 1).Elem())
			case i < mt.NumIn():
				in[i] = reflect.Zero(mt.In(i))
			default:
				in[i] = reflect.Zero(reflect.TypeOf((*any)(nil)).Elem())
			}
		}
		m.Call(in)
	}, nil
}
