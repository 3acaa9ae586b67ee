// Package breaker builds the circuit breakers that guard outbound delivery.
package breaker

import (
	"time"

	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"

	"github.com/sony/gobreaker"
)

// New returns a breaker that opens once at least 3 requests in a 60s window
// fail at a 60% ratio, and probes again after 30s.
func New(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}
