package database

import "time"

// RetryPolicy is a bounded retry schedule for the initial database
// connection: a maximum attempt count and a backoff function from attempt
// number (1-based) to sleep duration.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// Delay returns how long to wait after a failed attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff(attempt)
}

// ExponentialBackoff doubles the base delay per attempt, capped at max.
func ExponentialBackoff(base, max time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
			if d >= max {
				return max
			}
		}
		if d > max {
			return max
		}
		return d
	}
}

// DefaultRetryPolicy matches the startup behavior of the deployed service:
// five attempts with 1s..16s exponential backoff, capped at 30s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		Backoff:     ExponentialBackoff(time.Second, 30*time.Second),
	}
}
