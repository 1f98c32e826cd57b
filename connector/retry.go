package connector

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultRetryDelay = time.Second

// retryConnect calls connectFn until it succeeds, the attempts run out or ctx
// is done. The delay between attempts grows by opts.Backoff (default 2) up to
// opts.MaxDelay.
func retryConnect(ctx context.Context, opts *RetryConfig, connectFn func(context.Context) error) error {
	delay := opts.BaseDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	backoff := opts.Backoff
	if backoff < 1 {
		backoff = 2
	}
	log := zerolog.Ctx(ctx)

	var err error
	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if err = connectFn(ctx); err == nil {
			return nil
		}
		if attempt == opts.MaxRetries {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("delay", delay).Msg("connect failed, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * backoff)
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
	return err
}
