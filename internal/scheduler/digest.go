// Package scheduler sends the operator a periodic digest of new subscribers.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/wellandwilde/landing-be/internal/models"
)

// Digest mails the operator every subscriber recorded since its previous
// successful run, on a cron schedule.
type Digest struct {
	store    models.SubscriberStore
	notifier models.DigestNotifier
	schedule cron.Schedule
	timeout  time.Duration
	now      func() time.Time

	mu    sync.Mutex
	since time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewDigest parses a standard five-field cron expression (descriptors such
// as "@daily" are accepted too).
func NewDigest(expr string, store models.SubscriberStore, notifier models.DigestNotifier) (*Digest, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", expr, err)
	}
	return &Digest{
		store:    store,
		notifier: notifier,
		schedule: schedule,
		timeout:  time.Minute,
		now:      time.Now,
		since:    time.Now().UTC(),
		done:     make(chan struct{}),
	}, nil
}

// Run blocks, firing at each scheduled time until Stop is called.
func (d *Digest) Run() {
	log.Info().Msg("Starting digest scheduler...")
	for {
		now := d.now()
		next := d.schedule.Next(now)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-d.done:
			timer.Stop()
			log.Info().Msg("Stopping digest scheduler.")
			return
		case <-timer.C:
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			if err := d.RunOnce(ctx); err != nil {
				log.Error().Err(err).Msg("Digest run failed")
			}
			cancel()
		}
	}
}

// Stop halts the scheduler. It is safe to call more than once.
func (d *Digest) Stop() {
	d.stopOnce.Do(func() { close(d.done) })
}

// RunOnce sends one digest covering subscribers newer than the previous
// successful run. The window only advances when nothing was pending or the
// digest went out, so a failed send is retried on the next run.
func (d *Digest) RunOnce(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cutoff := d.now().UTC()
	subs, err := d.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list subscribers: %w", err)
	}

	fresh := make([]models.Subscriber, 0, len(subs))
	for _, s := range subs {
		if s.SubscribedAt.After(d.since) && !s.SubscribedAt.After(cutoff) {
			fresh = append(fresh, s)
		}
	}

	if len(fresh) == 0 {
		log.Debug().Msg("No new subscribers for digest")
		d.since = cutoff
		return nil
	}

	if !d.notifier.SendDigest(ctx, fresh) {
		return fmt.Errorf("digest of %d subscribers was not delivered", len(fresh))
	}

	log.Info().Int("subscribers", len(fresh)).Msg("Digest sent")
	d.since = cutoff
	return nil
}
