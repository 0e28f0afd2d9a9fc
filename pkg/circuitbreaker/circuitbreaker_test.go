package circuitbreaker_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"github.com/tokenparty/tparty-client/pkg/circuitbreaker"
)

func TestCircuitBreakerTripsOnFailingRatio(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("test")
	require.Equal(t, gobreaker.StateClosed, cb.State())

	for i := 0; i <= circuitbreaker.MaxNumOfFailingRequests; i++ {
		cb.Execute(func() (interface{}, error) {
			return nil, errors.New("connection refused")
		})
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestCircuitBreakerStaysClosedOnSuccess(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("test")

	for i := 0; i <= circuitbreaker.MaxNumOfFailingRequests; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return "ok", nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, gobreaker.StateClosed, cb.State())
}
