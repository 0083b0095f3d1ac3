package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"clinic-portal/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
)

const (
	// Timeout for one refresh round
	referenceSyncTimeout = 30 * time.Second
)

// Warmer reloads one cached dictionary through its repository.
type Warmer struct {
	Name string
	Load func(ctx context.Context) error
}

// ReferenceSyncService keeps the shared reference dictionaries fresh.
// Every interval it drops the cached keys and reloads them, so edits made
// directly in the clinic API show up without waiting for the cache TTL.
type ReferenceSyncService struct {
	store    cache.Store
	keys     []string
	warmers  []Warmer
	interval time.Duration
	log      *logrus.Logger

	lastSync atomic.Int64

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewReferenceSyncService starts the refresh loop unless interval is zero.
// Call Stop() during graceful shutdown.
func NewReferenceSyncService(store cache.Store, keys []string, warmers []Warmer, interval time.Duration, log *logrus.Logger) *ReferenceSyncService {
	svc := &ReferenceSyncService{
		store:    store,
		keys:     keys,
		warmers:  warmers,
		interval: interval,
		log:      log,
		stopChan: make(chan struct{}),
	}

	if interval > 0 {
		svc.wg.Add(1)
		go svc.refreshLoop()
	}

	return svc
}

// Stop is safe to call multiple times.
func (s *ReferenceSyncService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("ReferenceSyncService stopped")
	}
}

// SyncOnStartup loads every dictionary once. Failures are logged; a
// dictionary that could not be loaded is fetched on first use instead.
func (s *ReferenceSyncService) SyncOnStartup(ctx context.Context) int {
	s.log.Infof("Warming reference data in %s cache...", s.store.Backend())
	startTime := time.Now()

	warmed := s.warm(ctx)

	s.lastSync.Store(time.Now().Unix())
	s.log.Infof("Reference warm-up completed: %d of %d dictionaries in %v", warmed, len(s.warmers), time.Since(startTime))
	return warmed
}

// Refresh drops the cached dictionaries and reloads them.
func (s *ReferenceSyncService) Refresh(ctx context.Context) int {
	if err := s.store.Delete(ctx, s.keys...); err != nil {
		s.log.Warnf("Failed to drop reference keys: %+v", err)
		return 0
	}

	warmed := s.warm(ctx)
	s.lastSync.Store(time.Now().Unix())
	s.log.Debugf("Refreshed %d reference dictionaries", warmed)
	return warmed
}

// LastSync is the time of the last completed round, zero before the first.
func (s *ReferenceSyncService) LastSync() time.Time {
	unix := s.lastSync.Load()
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}

func (s *ReferenceSyncService) warm(ctx context.Context) int {
	warmed := 0
	for _, w := range s.warmers {
		select {
		case <-ctx.Done():
			return warmed
		default:
		}

		if err := w.Load(ctx); err != nil {
			s.log.Warnf("Failed to warm %s: %+v", w.Name, err)
			continue
		}
		warmed++
	}
	return warmed
}

func (s *ReferenceSyncService) refreshLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Reference refresh goroutine stopping")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), referenceSyncTimeout)
			s.Refresh(ctx)
			cancel()
		}
	}
}
