package lost112

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/ahachul/ahachul-backend/common/logger"
)

type countingImporter struct {
	mu       sync.Mutex
	calls    int
	failures int
}

func (c *countingImporter) Import(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.failures > 0 {
		c.failures--
		return 0, errors.New("feed unavailable")
	}
	return 1, nil
}

func (c *countingImporter) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// advanceUntil moves the clock forward a second at a time until cond holds.
func advanceUntil(t *testing.T, mockClock *clock.Mock, cond func() bool) {
	require.Eventually(t, func() bool {
		if cond() {
			return true
		}
		mockClock.Add(time.Second)
		return cond()
	}, 5*time.Second, 10*time.Millisecond)
}

func TestImportTimer(t *testing.T) {
	mockClock := clock.NewMock()
	importer := &countingImporter{failures: 2}
	timer := NewImportTimer(importer, ImportInterval(time.Minute), mockClock, logger.NoOpLogFactory)
	timer.Start()
	defer timer.Stop()

	// Imports once on start, and retries only after the retry delay has passed
	require.Eventually(t, func() bool { return importer.Calls() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, importer.Calls())
	advanceUntil(t, mockClock, func() bool { return importer.Calls() == 3 })

	mockClock.Add(time.Minute)
	require.Eventually(t, func() bool { return importer.Calls() == 4 }, 5*time.Second, 10*time.Millisecond)
}

func TestImportTimerGivesUp(t *testing.T) {
	mockClock := clock.NewMock()
	importer := &countingImporter{failures: 100}
	timer := NewImportTimer(importer, ImportInterval(time.Minute), mockClock, logger.NoOpLogFactory)
	timer.Start()
	defer timer.Stop()

	advanceUntil(t, mockClock, func() bool { return importer.Calls() == maxImportAttempts })
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, maxImportAttempts, importer.Calls())
}
