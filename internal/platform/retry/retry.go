// Package retry bounds calls to external collaborators with a per-attempt
// timeout and exponential backoff between attempts.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/srgjo27/royale_boxoffice/internal/platform/logging"
)

type Policy struct {
	// Attempts is the total number of calls, including the first.
	Attempts        int
	Timeout         time.Duration
	InitialInterval time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Timeout: 5 * time.Second, InitialInterval: 100 * time.Millisecond}
}

// Permanent stops the retry loop and returns err unchanged.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls op until it succeeds, returns a Permanent error, the attempts run
// out or ctx is done.
func Do[T any](ctx context.Context, p Policy, name string, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := max(p.Attempts, 1)

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)

	return backoff.RetryNotifyWithData(func() (T, error) {
		return Once(ctx, p, op)
	}, bo, func(err error, wait time.Duration) {
		logging.FromContext(ctx).WithFields(logrus.Fields{
			"call":  name,
			"retry": wait,
		}).WithError(err).Warn("Collaborator call failed, retrying")
	})
}

// Once calls op a single time under the policy timeout. It is used for calls
// that must not be repeated, such as seat decrements and payment.
func Once[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	if p.Timeout <= 0 {
		return op(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	return op(callCtx)
}
