package breaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cb := New("test")
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	cb := New("test")

	for i := 0; i < 5; i++ {
		v, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
		assert.NoError(t, err)
		assert.Equal(t, "ok", v)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
