// Gustus - Movie Taste Profiling and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gustus

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gustus/internal/logging"
	"github.com/tomtom215/gustus/internal/metrics"
	"github.com/tomtom215/gustus/internal/models"
)

// CircuitBreakerClient wraps a MetadataClient with the circuit breaker
// pattern so a failing metadata service stops consuming the per-run rate
// budget and recovers on its own schedule.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests should exercise the wrapped client directly.
type CircuitBreakerClient struct {
	client MetadataClient
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

var _ MetadataClient = (*CircuitBreakerClient)(nil)

// NewCircuitBreakerClient wraps client with a circuit breaker.
// The breaker opens after a 60% failure rate across at least 10 requests,
// waits 2 minutes before probing, and allows 3 concurrent probes while
// half-open.
func NewCircuitBreakerClient(client MetadataClient) *CircuitBreakerClient {
	cbName := "tmdb-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: cbName}
}

// execute wraps one metadata call with circuit breaker protection.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// FindByExternalID delegates through the circuit breaker.
func (cbc *CircuitBreakerClient) FindByExternalID(ctx context.Context, externalID string) (*FindResult, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.FindByExternalID(ctx, externalID)
	})
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*FindResult)
	if !ok && result != nil {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// Discover delegates through the circuit breaker.
func (cbc *CircuitBreakerClient) Discover(ctx context.Context, filter DiscoverFilter) ([]models.CandidateMovie, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.Discover(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return castSlice(result)
}

// SearchPerson delegates through the circuit breaker.
func (cbc *CircuitBreakerClient) SearchPerson(ctx context.Context, name string) (int, bool, error) {
	type personHit struct {
		id    int
		found bool
	}
	result, err := cbc.execute(func() (interface{}, error) {
		id, found, err := cbc.client.SearchPerson(ctx, name)
		if err != nil {
			return nil, err
		}
		return personHit{id: id, found: found}, nil
	})
	if err != nil {
		return 0, false, err
	}
	hit, ok := result.(personHit)
	if !ok {
		return 0, false, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return hit.id, hit.found, nil
}

// PersonMovieCredits delegates through the circuit breaker.
func (cbc *CircuitBreakerClient) PersonMovieCredits(ctx context.Context, personID int) ([]models.CandidateMovie, error) {
	result, err := cbc.execute(func() (interface{}, error) {
		return cbc.client.PersonMovieCredits(ctx, personID)
	})
	if err != nil {
		return nil, err
	}
	return castSlice(result)
}

func castSlice(result interface{}) ([]models.CandidateMovie, error) {
	if result == nil {
		return nil, nil
	}
	typed, ok := result.([]models.CandidateMovie)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
