package typed_test

import (
	"testing"

	"github.com/delaneyj/slotparty/hub"
	"github.com/delaneyj/slotparty/typed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type thermostat struct{ target float64 }
type display struct{ lines []string }
type logger struct{ entries int }

func TestSignal0(t *testing.T) {
	r := hub.New()
	th := &thermostat{}
	d := &display{}

	sig, err := typed.New0(r, th, "booted")
	require.NoError(t, err)

	calls := 0
	require.NoError(t, sig.Connect(d, "refresh", func() { calls++ }))
	require.NoError(t, sig.Emit())
	require.NoError(t, sig.Emit())
	assert.Equal(t, 2, calls)

	require.NoError(t, sig.Disconnect(d, "refresh"))
	require.NoError(t, sig.Emit())
	assert.Equal(t, 2, calls)
}

func TestSignal1(t *testing.T) {
	r := hub.New()
	th := &thermostat{}
	d := &display{}

	sig, err := typed.New1[float64](r, th, "target_changed")
	require.NoError(t, err)

	var got []float64
	require.NoError(t, sig.Connect(d, "show", func(v float64) { got = append(got, v) }))
	require.NoError(t, sig.Emit(21.5))
	require.NoError(t, sig.Emit(19.0))
	assert.Equal(t, []float64{21.5, 19.0}, got)
}

func TestSignal2(t *testing.T) {
	r := hub.New()
	th := &thermostat{}
	lg := &logger{}

	sig, err := typed.New2[string, int](r, th, "mode_changed")
	require.NoError(t, err)

	var mode string
	var level int
	require.NoError(t, sig.Connect(lg, "record", func(m string, l int) {
		mode, level = m, l
		lg.entries++
	}))
	require.NoError(t, sig.Emit("heat", 3))
	assert.Equal(t, "heat", mode)
	assert.Equal(t, 3, level)
	assert.Equal(t, 1, lg.entries)
}

func TestTypedOneshot(t *testing.T) {
	r := hub.New()
	th := &thermostat{}
	d := &display{}

	sig, err := typed.New1[float64](r, th, "target_changed")
	require.NoError(t, err)

	calls := 0
	require.NoError(t, sig.ConnectOneshot(d, "first_reading", func(float64) { calls++ }))
	require.NoError(t, sig.Emit(20.0))
	require.NoError(t, sig.Emit(22.0))
	assert.Equal(t, 1, calls)
}

func TestTypedSharesRegistry(t *testing.T) {
	r := hub.New()
	th := &thermostat{}
	d := &display{}

	sig, err := typed.New1[float64](r, th, "target_changed")
	require.NoError(t, err)

	// The facade registers on the shared registry, so the untyped API
	// sees the same signal and its errors.
	_, ok := r.Get(th, "target_changed")
	assert.True(t, ok)
	_, err = typed.New1[float64](r, th, "target_changed")
	assert.ErrorIs(t, err, hub.ErrDuplicateSignal)

	require.NoError(t, sig.Connect(d, "show", func(float64) {}))
	assert.ErrorIs(t,
		r.Connect(th, "target_changed", d, "show", hub.WithCallback(func(...any) {})),
		hub.ErrDuplicateConnection)

	sig.Deregister()
	_, ok = r.Get(th, "target_changed")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Objects().Cardinality())
}
