package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/alimikegami/storefront-service/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

// CreateCircuitBreaker trips once at least 3 calls were made and 60% of them failed. An open
// breaker probes again after 30 seconds. Requests the upstream rejected as malformed and calls
// abandoned by the caller do not count as failures.
func CreateCircuitBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.IsSuccessful = IsSuccessful
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().Str("component", "CircuitBreaker").Str("breaker", name).
			Str("from", from.String()).Str("to", to.String()).Msg("state changed")
	}

	return gobreaker.NewCircuitBreaker[[]byte](st)
}

// IsSuccessful reports whether err says nothing about the health of the upstream.
func IsSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}

	var statusErr *httpclient.StatusError
	return errors.As(err, &statusErr) && statusErr.ClientFault()
}
