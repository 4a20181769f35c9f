package imagesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// withRetry runs op up to attempts times, sleeping base*2^n after the n-th failure.
// The sleep is cut short when ctx is done.
func withRetry(ctx context.Context, log *logrus.Logger, name string, attempts int, base time.Duration, op func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if lastErr = op(ctx); lastErr == nil {
			return nil
		}

		remaining := attempts - attempt - 1
		log.WithFields(logrus.Fields{
			"operation":         name,
			"attempt":           attempt + 1,
			"retries_remaining": remaining,
		}).WithError(lastErr).Warn("image lookup attempt failed")
		if remaining == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(base << attempt):
		}
	}
	return fmt.Errorf("%s: all %d attempts failed: %w", name, attempts, lastErr)
}
