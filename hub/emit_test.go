package hub_test

import (
	"testing"

	"github.com/delaneyj/slotparty/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type player struct{ health int }
type hud struct{ shown []any }
type achievements struct{ lowHealthSeen bool }

func (h *hud) Update(health int) {
	h.shown = append(h.shown, health)
}

func TestEmitPassesArgumentsThrough(t *testing.T) {
	r := hub.New()
	p := &player{}
	h := &hud{}
	require.NoError(t, r.Register(p, "health_changed"))

	var got []any
	require.NoError(t, r.Connect(p, "health_changed", h, "update", hub.WithCallback(func(args ...any) {
		got = append(got, args...)
	})))

	require.NoError(t, r.Emit(p, "health_changed", 70, "poison", true))
	assert.Equal(t, []any{70, "poison", true}, got)

	require.NoError(t, r.Emit(p, "health_changed"))
	assert.Len(t, got, 3)
}

func TestEmitUnknownSignal(t *testing.T) {
	r := hub.New()
	p := &player{}
	require.NoError(t, r.Register(p, "health_changed"))

	before := r.Fingerprint()
	assert.ErrorIs(t, r.Emit(p, "nope"), hub.ErrSignalNotFound)
	assert.ErrorIs(t, r.Emit(&player{}, "health_changed"), hub.ErrSignalNotFound)
	assert.Equal(t, before, r.Fingerprint())
}

func TestEmitWithZeroConnections(t *testing.T) {
	r := hub.New()
	p := &player{}
	require.NoError(t, r.Register(p, "health_changed"))
	assert.NoError(t, r.Emit(p, "health_changed", 100))
}

func TestEmitInvokesEachConnectionOnce(t *testing.T) {
	r := hub.New()
	p := &player{}
	require.NoError(t, r.Register(p, "tick"))

	counts := map[string]int{}
	for _, name := range []string{"a", "b", "c"} {
		name := name
		require.NoError(t, r.Connect(p, "tick", &hud{}, name, hub.WithCallback(func(args ...any) {
			counts[name]++
		})))
	}

	require.NoError(t, r.Emit(p, "tick"))
	require.NoError(t, r.Emit(p, "tick"))
	assert.Equal(t, map[string]int{"a": 2, "b": 2, "c": 2}, counts)
}

func TestEmitCreationOrder(t *testing.T) {
	r := hub.New()
	p := &player{}
	require.NoError(t, r.Register(p, "tick"))

	var order []string
	for _, name := range []string{"first", "second", "third", "fourth"} {
		name := name
		require.NoError(t, r.Connect(p, "tick", &hud{}, name, hub.WithCallback(func(args ...any) {
			order = append(order, name)
		})))
	}

	require.NoError(t, r.Emit(p, "tick"))
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, order)
}

func TestOneshotFiresExactlyOnce(t *testing.T) {
	r := hub.New()
	p := &player{}
	a := &achievements{}
	require.NoError(t, r.Register(p, "health_changed"))

	calls := 0
	require.NoError(t, r.Connect(p, "health_changed", a, "low_health",
		hub.WithCallback(func(args ...any) { calls++ }),
		hub.Oneshot(),
	))

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Emit(p, "health_changed", 90-i))
	}
	assert.Equal(t, 1, calls)

	sig, ok := r.Get(p, "health_changed")
	require.True(t, ok)
	assert.Equal(t, 0, sig.Len())
	assert.False(t, r.Objects().Contains(a))
}

// The oneshot disconnect does not depend on what the callback decided
// internally: a predicate that "fails" still consumes the connection.
func TestOneshotDisconnectsRegardlessOfCallbackOutcome(t *testing.T) {
	r := hub.New()
	p := &player{}
	h := &hud{}
	a := &achievements{}
	require.NoError(t, r.Register(p, "health_changed"))

	hudCalls := 0
	require.NoError(t, r.Connect(p, "health_changed", h, "update", hub.WithCallback(func(args ...any) {
		hudCalls++
	})))
	require.NoError(t, r.Connect(p, "health_changed", a, "low_health",
		hub.WithCallback(func(args ...any) {
			if args[0].(int) <= 50 {
				a.lowHealthSeen = true
			}
		}),
		hub.Oneshot(),
	))

	require.NoError(t, r.Emit(p, "health_changed", 70))
	assert.Equal(t, 1, hudCalls)
	assert.False(t, a.lowHealthSeen)

	// The condition was false, but the oneshot is already gone.
	require.NoError(t, r.Emit(p, "health_changed", 30))
	assert.Equal(t, 2, hudCalls)
	assert.False(t, a.lowHealthSeen)
}

func TestReentrantDisconnectDuringEmit(t *testing.T) {
	r := hub.New()
	p := &player{}
	first := &hud{}
	second := &hud{}
	require.NoError(t, r.Register(p, "tick"))

	secondCalls := 0
	require.NoError(t, r.Connect(p, "tick", first, "kill_second", hub.WithCallback(func(args ...any) {
		require.NoError(t, r.Disconnect(p, "tick", second, "count"))
	})))
	require.NoError(t, r.Connect(p, "tick", second, "count", hub.WithCallback(func(args ...any) {
		secondCalls++
	})))

	// Both were present at emit start, so both run this pass.
	require.NoError(t, r.Emit(p, "tick"))
	assert.Equal(t, 1, secondCalls)

	require.NoError(t, r.Emit(p, "tick"))
	assert.Equal(t, 1, secondCalls)
}

func TestReentrantConnectDuringEmit(t *testing.T) {
	r := hub.New()
	p := &player{}
	h := &hud{}
	late := &hud{}
	require.NoError(t, r.Register(p, "tick"))

	lateCalls := 0
	require.NoError(t, r.Connect(p, "tick", h, "spawn", hub.WithCallback(func(args ...any) {
		err := r.Connect(p, "tick", late, "late", hub.WithCallback(func(args ...any) {
			lateCalls++
		}))
		if !assert.NoError(t, err) {
			return
		}
	})))

	// Not in the emit-start snapshot, so not invoked this pass.
	require.NoError(t, r.Emit(p, "tick"))
	assert.Equal(t, 0, lateCalls)

	require.NoError(t, r.Disconnect(p, "tick", h, "spawn"))
	require.NoError(t, r.Emit(p, "tick"))
	assert.Equal(t, 1, lateCalls)
}

func TestReentrantDeregisterDuringEmit(t *testing.T) {
	r := hub.New()
	p := &player{}
	a := &hud{}
	b := &hud{}
	require.NoError(t, r.Register(p, "tick"))

	bCalls := 0
	require.NoError(t, r.Connect(p, "tick", a, "teardown", hub.WithCallback(func(args ...any) {
		r.Deregister(p, "tick")
	})))
	require.NoError(t, r.Connect(p, "tick", b, "count", hub.WithCallback(func(args ...any) {
		bCalls++
	})))

	require.NoError(t, r.Emit(p, "tick"))
	assert.Equal(t, 1, bCalls)
	assert.ErrorIs(t, r.Emit(p, "tick"), hub.ErrSignalNotFound)
	assert.Equal(t, 0, r.Objects().Cardinality())
}

func TestDefaultCallbackInvokesNamedMethod(t *testing.T) {
	r := hub.New()
	p := &player{}
	h := &hud{}
	require.NoError(t, r.Register(p, "health_changed"))

	// No callback supplied: the connection id doubles as the method name.
	require.NoError(t, r.Connect(p, "health_changed", h, "Update"))

	require.NoError(t, r.Emit(p, "health_changed", 70))
	require.NoError(t, r.Emit(p, "health_changed", 30))
	assert.Equal(t, []any{70, 30}, h.shown)
}

func TestDefaultCallbackRequiresResolvableMethod(t *testing.T) {
	r := hub.New()
	p := &player{}
	h := &hud{}
	require.NoError(t, r.Register(p, "health_changed"))

	assert.ErrorIs(t, r.Connect(p, "health_changed", h, "NoSuchMethod"), hub.ErrInvalidArgument)
	assert.ErrorIs(t, r.Connect(p, "health_changed", h, 9), hub.ErrInvalidArgument)

	sig, ok := r.Get(p, "health_changed")
	require.True(t, ok)
	assert.Equal(t, 0, sig.Len())
}
