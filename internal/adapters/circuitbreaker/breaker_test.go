package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errUpstream = errors.New("upstream failed")

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := New(2, time.Minute)

	fail := func() error { return errUpstream }

	assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(fail), errUpstream)
	assert.Equal(t, StateOpen, cb.State())

	// open breaker fails fast without calling fn
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := New(1, 10*time.Millisecond)

	assert.Error(t, cb.Execute(func() error { return errUpstream }))
	assert.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	ok := func() error { return nil }
	for i := 0; i < 3; i++ {
		assert.NoError(t, cb.Execute(ok))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New(1, 10*time.Millisecond)

	assert.Error(t, cb.Execute(func() error { return errUpstream }))
	time.Sleep(20 * time.Millisecond)

	assert.Error(t, cb.Execute(func() error { return errUpstream }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(2, time.Minute)

	assert.Error(t, cb.Execute(func() error { return errUpstream }))
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Error(t, cb.Execute(func() error { return errUpstream }))
	assert.Equal(t, StateClosed, cb.State(), "success in between resets the failure streak")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
}
