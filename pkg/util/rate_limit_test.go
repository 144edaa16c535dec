package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestNewValidRateLimiter(t *testing.T) {
	cases := []struct {
		name     string
		r        rate.Limit
		b        int
		hasError bool
	}{
		{"valid limiter", 0.1, 1, false},
		{"zero rate", 0, 1, true},
		{"zero burst", 0.1, 0, true},
		{"both zero", 0, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			limiter, err := NewValidLimiter(c.r, c.b)
			assert.Equal(t, c.hasError, err != nil)
			if !c.hasError {
				assert.NotNil(t, limiter)
			}
		})
	}
}

func TestParseRateLimitSyntax(t *testing.T) {
	cases := []struct {
		desc      string
		wantBurst int
		wantLimit rate.Limit
		hasError  bool
	}{
		{"2+1/5s", 2, rate.Every(5 * time.Second), false},
		{"3m", 1, rate.Every(3 * time.Minute), false},
		{"1/3m", 1, rate.Every(3 * time.Minute), false},
		{"5+2/1m", 5, rate.Every(30 * time.Second), false},
		{"abc", 0, 0, true},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			limiter, err := ParseRateLimitSyntax(c.desc)
			if c.hasError {
				assert.Error(t, err)
				return
			}
			if assert.NoError(t, err) {
				assert.Equal(t, c.wantBurst, limiter.Burst())
				assert.InDelta(t, float64(c.wantLimit), float64(limiter.Limit()), 1e-9)
			}
		})
	}
}
