package engine

import (
	"math"
	"time"
)

// BackoffStrategy controls how a retry's delay grows between attempts.
type BackoffStrategy string

const (
	BackoffConstant    BackoffStrategy = "constant"
	BackoffLinear      BackoffStrategy = "linear"
	BackoffExponential BackoffStrategy = "exponential"
)

// RetryPolicy governs re-enqueue attempts scheduled by a check's on_fail
// block (ActionBlock.Retry.Max), not low-level transport retries — a
// provider that wants transport-level retry implements that itself.
//
// Grounded on InternalRetryPolicy
// (backend/pkg/engine/retry_policy.go): same strategy enum and GetDelay
// shape, generalized from a per-node-execution retry loop to a per-check
// routing-level retry budget the Routing Engine consults.
type RetryPolicy struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffStrategy BackoffStrategy
}

// DefaultRetryPolicy mirrors a sane default: three attempts,
// exponential backoff starting at one second, capped at thirty.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialDelay:    1 * time.Second,
		MaxDelay:        30 * time.Second,
		BackoffStrategy: BackoffExponential,
	}
}

// GetDelay computes the backoff delay before attempt N (1-indexed).
func (rp RetryPolicy) GetDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	var delay time.Duration
	switch rp.BackoffStrategy {
	case BackoffConstant:
		delay = rp.InitialDelay
	case BackoffLinear:
		delay = rp.InitialDelay * time.Duration(attempt)
	case BackoffExponential:
		delay = time.Duration(float64(rp.InitialDelay) * math.Pow(2, float64(attempt-1)))
	default:
		delay = rp.InitialDelay
	}
	if rp.MaxDelay > 0 && delay > rp.MaxDelay {
		delay = rp.MaxDelay
	}
	return delay
}
