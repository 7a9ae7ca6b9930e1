package gh

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/go-github/v83/github"
)

const (
	rateLimitThreshold = 10

	// No metric may block indefinitely, so waiting out a long reset
	// window is not an option here; past the cap the next call is left
	// to fail into its metric's fallback path.
	maxRateLimitWait = 5 * time.Second
)

func checkRateLimit(resp *github.Response) {
	if resp == nil {
		return
	}

	if resp.Rate.Remaining > rateLimitThreshold {
		return
	}

	resetAt := resp.Rate.Reset.Time
	wait := time.Until(resetAt)
	if wait <= 0 {
		return
	}

	jitter := time.Duration(rand.IntN(2000)) * time.Millisecond
	total := wait + jitter
	if total > maxRateLimitWait {
		slog.Warn("rate limit reset too far out, not waiting",
			"remaining", resp.Rate.Remaining,
			"reset_at", resetAt.Format(time.RFC3339),
		)
		return
	}

	slog.Info("rate limit approaching, waiting",
		"remaining", resp.Rate.Remaining,
		"reset_at", resetAt.Format(time.RFC3339),
		"wait", total.String(),
	)

	time.Sleep(total)
}
