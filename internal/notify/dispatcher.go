// Package notify runs subscription notifications off the request path.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wellandwilde/landing-be/internal/models"
)

// Delivery is the outcome of one notification job.
type Delivery struct {
	JobID      string
	Email      string
	OperatorOK bool
	WelcomeOK  bool
	Duration   time.Duration
}

// Observer is told about every finished job.
type Observer interface {
	Observe(Delivery)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Delivery)

func (f ObserverFunc) Observe(d Delivery) { f(d) }

// Options tunes a Dispatcher.
type Options struct {
	QueueSize   int
	Workers     int
	SendTimeout time.Duration
	Observers   []Observer
}

type job struct {
	id    string
	email string
}

// Dispatcher is a bounded background queue of notification jobs. Each job
// sends the operator alert and the welcome email; neither result reaches the
// caller that enqueued it.
type Dispatcher struct {
	notifier  models.Notifier
	jobs      chan job
	workers   int
	timeout   time.Duration
	observers []Observer
	stats     *Stats

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Call Start before enqueuing.
func NewDispatcher(notifier models.Notifier, opts Options) *Dispatcher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 0 {
		opts.QueueSize = 0
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 30 * time.Second
	}
	return &Dispatcher{
		notifier:  notifier,
		jobs:      make(chan job, opts.QueueSize),
		workers:   opts.Workers,
		timeout:   opts.SendTimeout,
		observers: opts.Observers,
		stats:     &Stats{},
	}
}

// Stats returns the dispatcher's live counters.
func (d *Dispatcher) Stats() *Stats {
	return d.stats
}

// Start launches the worker goroutines.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	log.Info().Int("workers", d.workers).Int("queue_size", cap(d.jobs)).Msg("Starting notification dispatcher...")
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop refuses new jobs, waits for queued jobs to finish and returns.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	log.Info().Msg("Stopped notification dispatcher.")
}

// Enqueue schedules notifications for a new subscriber without blocking.
// It reports false when the job was dropped because the queue is full or
// the dispatcher is stopped.
func (d *Dispatcher) Enqueue(email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.stats.dropped.Add(1)
		log.Warn().Str("subscriber", email).Msg("Notification dispatcher stopped, dropping job")
		return false
	}

	j := job{id: uuid.NewString(), email: email}
	select {
	case d.jobs <- j:
		d.stats.enqueued.Add(1)
		return true
	default:
		d.stats.dropped.Add(1)
		log.Warn().Str("subscriber", email).Str("job_id", j.id).Msg("Notification queue full, dropping job")
		return false
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.process(j)
	}
}

func (d *Dispatcher) process(j job) {
	start := time.Now()

	delivery := Delivery{JobID: j.id, Email: j.email}
	delivery.OperatorOK = d.call("operator", j, d.notifier.NotifyOperator)
	delivery.WelcomeOK = d.call("welcome", j, d.notifier.SendWelcome)
	delivery.Duration = time.Since(start)

	d.stats.record(delivery)

	ev := log.Info()
	if !delivery.OperatorOK || !delivery.WelcomeOK {
		ev = log.Warn()
	}
	ev.Str("job_id", j.id).
		Str("subscriber", j.email).
		Bool("operator_ok", delivery.OperatorOK).
		Bool("welcome_ok", delivery.WelcomeOK).
		Dur("duration", delivery.Duration).
		Msg("Notification job finished")

	for _, o := range d.observers {
		o.Observe(delivery)
	}
}

// call runs one send under its own timeout and shields the worker from a
// misbehaving notifier.
func (d *Dispatcher) call(kind string, j job, send func(context.Context, string) bool) (ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Err(fmt.Errorf("%v", r)).Str("job_id", j.id).Str("kind", kind).Msg("Notifier panicked")
			ok = false
		}
	}()
	return send(ctx, j.email)
}
