package lost112

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/ahachul/ahachul-backend/common/logger"
	"github.com/ahachul/ahachul-backend/common/util"
	"github.com/ahachul/ahachul-backend/server/services"
)

const (
	DefaultImportInterval = 1 * time.Minute
	// importTimeout bounds a single tick including its retries.
	importTimeout = 50 * time.Second
	// maxImportAttempts is the number of times an import is tried on each tick.
	maxImportAttempts = 3
	// importRetryDelay is the wait between failed attempts within a tick.
	importRetryDelay = 5 * time.Second
)

type ImportInterval time.Duration

// ImportTimer periodically imports found items while the server runs.
type ImportTimer struct {
	*util.StatefulService
	lost112Service services.Lost112Service
	interval       time.Duration
	clk            clock.Clock
	logger.Log
}

func NewImportTimer(
	lost112Service services.Lost112Service,
	interval ImportInterval,
	clk clock.Clock,
	logFactory logger.LogFactory,
) *ImportTimer {
	if interval <= 0 {
		interval = ImportInterval(DefaultImportInterval)
	}
	s := &ImportTimer{
		lost112Service: lost112Service,
		interval:       time.Duration(interval),
		clk:            clk,
		Log:            logFactory("Lost112ImportTimer"),
	}
	s.StatefulService = util.NewStatefulService(context.Background(), s.Log, s.loop)
	return s
}

func (s *ImportTimer) loop() {
	ticker := s.clk.Ticker(s.interval)
	defer ticker.Stop()
	s.doImport()
	for {
		select {
		case <-s.StatefulService.Ctx().Done():
			s.Infof("Import timer service closed; exiting...")
			return
		case <-ticker.C:
			s.doImport()
		}
	}
}

func (s *ImportTimer) doImport() {
	ctx, cancel := context.WithTimeout(s.StatefulService.Ctx(), importTimeout)
	defer cancel()
	for attempt := 1; attempt <= maxImportAttempts; attempt++ {
		_, err := s.lost112Service.Import(ctx)
		if err == nil {
			return
		}
		if ctx.Err() != nil {
			s.Errorf("Giving up on Lost112 import: %v", err)
			return
		}
		s.Warnf("Lost112 import attempt %d of %d failed: %v", attempt, maxImportAttempts, err)
		if attempt == maxImportAttempts {
			return
		}
		select {
		case <-ctx.Done():
			s.Errorf("Giving up on Lost112 import: %v", ctx.Err())
			return
		case <-s.clk.After(importRetryDelay):
		}
	}
}
