package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// rateWindow is the sliding window the request rate is computed over
	rateWindow = time.Minute
	// maxSamples bounds memory; only the most recent samples are kept
	maxSamples = 1000
)

// RateTracker tracks request timestamps over a sliding one-minute window
// and reports the current requests-per-second rate. Safe for concurrent use.
type RateTracker struct {
	mu         sync.Mutex
	timestamps []time.Time
	now        func() time.Time
}

// NewRateTracker creates a new RateTracker
func NewRateTracker() *RateTracker {
	return &RateTracker{
		timestamps: make([]time.Time, 0, maxSamples),
		now:        time.Now,
	}
}

// Observe records a request at the current time
func (t *RateTracker) Observe() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.timestamps = append(t.timestamps, t.now())
	if len(t.timestamps) > maxSamples {
		t.timestamps = t.timestamps[len(t.timestamps)-maxSamples:]
	}
}

// Rate returns the requests-per-second rate over the last minute.
// Samples older than the window are discarded.
func (t *RateTracker) Rate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-rateWindow)
	i := 0
	for i < len(t.timestamps) && t.timestamps[i].Before(cutoff) {
		i++
	}
	t.timestamps = t.timestamps[i:]

	if len(t.timestamps) == 0 {
		return 0
	}
	return float64(len(t.timestamps)) / rateWindow.Seconds()
}

// Middleware returns a gin handler that records every request
func (t *RateTracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		t.Observe()
		c.Next()
	}
}
