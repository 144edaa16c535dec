package util

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

func NewValidLimiter(r rate.Limit, b int) (*rate.Limiter, error) {
	if b <= 0 || r <= 0 {
		return nil, errors.Errorf("bad rate limit config, insufficient tokens (rate=%f, b=%d)", r, b)
	}
	return rate.NewLimiter(r, b), nil
}

// ParseRateLimitSyntax parses the rate limit syntax into the rate.Limiter parameters
// sample inputs:
//
//	2+1/5s (2 initial tokens, 1 token per 5 seconds)
//	5+3/1m (5 initial tokens, 3 tokens per minute)
//	3/1m   (3 tokens per minute)
//	1m     (1 token per minute)
func ParseRateLimitSyntax(desc string) (*rate.Limiter, error) {
	b, r, durStr := 1, 1.0, desc

	if _, err := fmt.Sscanf(desc, "%d+%f/%s", &b, &r, &durStr); err != nil {
		b, r = 1, 1.0
		if _, err := fmt.Sscanf(desc, "%f/%s", &r, &durStr); err != nil {
			r, durStr = 1.0, desc
		}
	}

	duration, err := time.ParseDuration(durStr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid rate limit syntax %q, expecting b+n/duration", desc)
	}

	if b == 0 {
		b = 1
	}

	if r == 1.0 {
		return NewValidLimiter(rate.Every(duration), b)
	}

	return NewValidLimiter(rate.Every(time.Duration(float64(duration)/r)), b)
}
