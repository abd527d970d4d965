package playback

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

// Scheduler turns "which trips are playing, at what speed" into forward
// progress: one independent ticker per playing trip, each tick advancing that
// trip's cursor by exactly one event. Tick sources are re-derived from the
// store's coarse signature, never from individual cursor movements, so an
// advancing index doesn't churn timers.
type Scheduler struct {
	store *Store

	// BaseInterval is the tick period at 1x speed. A trip at multiplier n
	// ticks every BaseInterval/n.
	BaseInterval time.Duration

	mutex         sync.Mutex
	initialised   bool
	lastSignature string
	cancelActive  context.CancelFunc
	active        *conc.WaitGroup
}

func NewScheduler(store *Store) *Scheduler {
	return &Scheduler{
		store:        store,
		BaseInterval: time.Second,
	}
}

// Run reconciles once, then blocks re-reconciling on every change signal from
// the store until the context is cancelled. On return every tick source has
// been cancelled and waited for.
func (s *Scheduler) Run(ctx context.Context) {
	s.Reconcile()

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			return
		case <-s.store.Changes():
			s.Reconcile()
		}
	}
}

// Reconcile compares the store's current play/speed signature against the
// last applied one and, only if it moved, tears down every active tick source
// before starting the new set. Old sources are fully cancelled and waited for
// first - at most one live tick source per trip at any instant.
func (s *Scheduler) Reconcile() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	signature := s.store.Signature()
	if s.initialised && signature == s.lastSignature {
		return
	}

	s.stopActiveLocked()

	snapshot := s.store.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	group := conc.NewWaitGroup()

	started := 0
	for _, trip := range snapshot.Trips {
		state, exists := snapshot.States[trip.TripID]
		if !exists || !state.IsPlaying {
			continue
		}

		tripID := trip.TripID
		period := s.BaseInterval / time.Duration(state.SpeedMultiplier)

		group.Go(func() {
			s.runTickSource(ctx, tripID, period)
		})
		started++
	}

	s.cancelActive = cancel
	s.active = group
	s.lastSignature = signature
	s.initialised = true

	log.Debug().Int("ticksources", started).Msg("Reconciled playback tick sources")
}

func (s *Scheduler) runTickSource(ctx context.Context, tripID string, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.store.IncrementIndex(tripID)
		}
	}
}

// Stop cancels all outstanding tick sources and waits for them to exit. No
// periodic work outlives the scheduler.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.stopActiveLocked()
	s.lastSignature = ""
	s.initialised = false
}

func (s *Scheduler) stopActiveLocked() {
	if s.cancelActive == nil {
		return
	}

	s.cancelActive()
	s.active.Wait()

	s.cancelActive = nil
	s.active = nil
}
