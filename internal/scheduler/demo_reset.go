package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tkoide/bookshelf/internal/database"
)

// DemoResetScheduler periodically restores the catalog to its seed state.
// Used when the service runs as a public demo so visitors always find the
// same starting data.
type DemoResetScheduler struct {
	db       *database.Database
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewDemoResetScheduler creates a new scheduler instance.
func NewDemoResetScheduler(db *database.Database, schedule string) *DemoResetScheduler {
	return &DemoResetScheduler{
		db:       db,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *DemoResetScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runReset()
	})
	if err != nil {
		return fmt.Errorf("invalid demo reset schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Demo reset scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running reset to finish.
func (s *DemoResetScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Demo reset scheduler: stopped")
}

// RunNow triggers an immediate reset.
func (s *DemoResetScheduler) RunNow() {
	go s.runReset()
}

// IsRunning returns whether the scheduler is active.
func (s *DemoResetScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next reset will occur.
func (s *DemoResetScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *DemoResetScheduler) runReset() {
	start := time.Now()
	if err := s.db.ResetCatalog(); err != nil {
		log.Printf("Demo reset: failed: %v", err)
		return
	}
	log.Printf("Demo reset: catalog restored to seed state in %v", time.Since(start).Round(time.Millisecond))
}
