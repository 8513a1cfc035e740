package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/forgo/haven/api/internal/service"
)

// InviteSweeper periodically removes invites that point at deleted
// servers or channels.
type InviteSweeper struct {
	inviteService *service.InviteService
	interval      time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
	running       bool
	mu            sync.Mutex
}

// NewInviteSweeper creates a new invite sweeper job
func NewInviteSweeper(inviteService *service.InviteService, interval time.Duration) *InviteSweeper {
	if interval == 0 {
		interval = 1 * time.Hour
	}
	return &InviteSweeper{
		inviteService: inviteService,
		interval:      interval,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the sweeper job
func (s *InviteSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()
	log.Printf("Invite sweeper started (interval: %v)", s.interval)
}

// Stop gracefully stops the sweeper job
func (s *InviteSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	log.Println("Invite sweeper stopped")
}

// run is the main loop
func (s *InviteSweeper) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep runs a single pass over stale invites
func (s *InviteSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	removed, err := s.inviteService.SweepOrphaned(ctx)
	if err != nil {
		log.Printf("Error sweeping orphaned invites: %v", err)
		return
	}

	if removed > 0 {
		log.Printf("Removed %d orphaned invites", removed)
	}
}

// RunOnce runs the sweep once (for testing or manual trigger)
func (s *InviteSweeper) RunOnce(ctx context.Context) error {
	_, err := s.inviteService.SweepOrphaned(ctx)
	return err
}

// IsRunning returns whether the sweeper is running
func (s *InviteSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
