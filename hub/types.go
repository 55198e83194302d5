package hub

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Callback receives the emission arguments, unchanged and in order.
type Callback func(args ...any)

// ident is a normalized signal or connection id. Ids are strings or
// integers compared by value; every integer width collapses to int64 so
// Connect(e, "s", l, 3) and Disconnect(e, "s", l, int32(3)) address the
// same connection.
type ident struct {
	str   string
	num   int64
	isNum bool
}

func (id ident) String() string {
	if id.isNum {
		return strconv.FormatInt(id.num, 10)
	}
	return strconv.Quote(id.str)
}

// key is the collision-free form used for fingerprinting, where the
// string "3" and the integer 3 must not digest identically.
func (id ident) key() string {
	if id.isNum {
		return "i:" + strconv.FormatInt(id.num, 10)
	}
	return "s:" + id.str
}

func newIdent(role string, v any) (ident, error) {
	switch v := v.(type) {
	case string:
		return ident{str: v}, nil
	case int:
		return ident{num: int64(v), isNum: true}, nil
	case int64:
		return ident{num: v, isNum: true}, nil
	}
	if v != nil {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String:
			return ident{str: rv.String()}, nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return ident{num: rv.Int(), isNum: true}, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			if rv.Uint() > math.MaxInt64 {
				return ident{}, &InvalidArgumentError{Role: role, Reason: "integer id overflows int64"}
			}
			return ident{num: int64(rv.Uint()), isNum: true}, nil
		}
	}
	return ident{}, &InvalidArgumentError{
		Role:   role,
		Reason: fmt.Sprintf("must be a string or integer, got %T", v),
	}
}

// checkIdentity rejects anything that cannot serve as a reference
// identity. Pointer-like comparable kinds qualify: two distinct objects
// never compare equal, and the value can key a Go map. Structs and
// scalars compare structurally and maps/slices/funcs are not comparable
// at all, so none of them can stand in for an object.
func checkIdentity(role string, v any) error {
	if v != nil {
		switch reflect.ValueOf(v).Kind() {
		case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
			return nil
		}
	}
	return &InvalidArgumentError{
		Role:   role,
		Reason: fmt.Sprintf("must be a reference (pointer or channel), got %T", v),
	}
}

// Connection is a single subscription, identified by the 4-tuple
// (emitter, signal id, listener, connection id). The same *Connection
// is stored in both indexes as two views of one record.
type Connection struct {
	emitter  any
	signalID ident
	listener any
	connID   ident
	callback Callback
	oneshot  bool
	seq      uint64
}
