package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/BenedictKing/jina-sum/internal/biz/usecase"
)

// CacheSweeper periodically evicts expired cache entries. Lookups already
// skip stale entries, so the sweeper only bounds memory for chats that
// never come back.
type CacheSweeper struct {
	cache *usecase.SessionCache

	sweepInterval time.Duration
	running       bool
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// NewCacheSweeper creates a new cache sweeper
func NewCacheSweeper(cache *usecase.SessionCache) *CacheSweeper {
	return &CacheSweeper{
		cache:         cache,
		sweepInterval: 5 * time.Minute,
		stopCh:        make(chan struct{}),
	}
}

// Start starts the sweeper
func (s *CacheSweeper) Start() {
	if s.running {
		return
	}
	s.running = true
	s.wg.Add(1)
	go s.loop()
	fmt.Printf("[Sweeper] Started with sweep interval %v\n", s.sweepInterval)
}

// Stop stops the sweeper
func (s *CacheSweeper) Stop() {
	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
	s.wg.Wait()
	fmt.Println("[Sweeper] Stopped")
}

func (s *CacheSweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.cache.Sweep(); removed > 0 {
				fmt.Printf("[Sweeper] Evicted %d expired entries\n", removed)
			}
		case <-s.stopCh:
			return
		}
	}
}
