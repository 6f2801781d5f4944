// Package monitor periodically estimates heart rate from the signal
// buffer and pushes the result to sinks.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"ppg-monitor/pkg/bpm"
	"ppg-monitor/pkg/storage"
)

type Update struct {
	Timestamp time.Time    `json:"timestamp"`
	BPM       bpm.Estimate `json:"bpm"`
	Samples   int          `json:"samples"`
}

// Current snapshots buf once and estimates from it.
func Current(buf storage.Buffer, est *bpm.Estimator, now time.Time) Update {
	values, timestamps := buf.Snapshot()
	return Update{
		Timestamp: now,
		BPM:       est.Estimate(values, timestamps),
		Samples:   len(values),
	}
}

type Sink interface {
	Publish(u Update) error
}

type SinkFunc func(u Update) error

func (f SinkFunc) Publish(u Update) error { return f(u) }

// JSONPublisher is satisfied by *hub.Hub and *stream.Publisher.
type JSONPublisher interface {
	PublishJSON(v any) error
}

// JSONSink adapts anything that publishes JSON.
func JSONSink(p JSONPublisher) Sink {
	return SinkFunc(func(u Update) error { return p.PublishJSON(u) })
}

type Broadcaster struct {
	buffer    storage.Buffer
	estimator *bpm.Estimator
	interval  time.Duration
	sinks     []Sink
	logger    *slog.Logger
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBroadcaster(buf storage.Buffer, est *bpm.Estimator, interval time.Duration, logger *slog.Logger, sinks ...Sink) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	if est == nil {
		est = bpm.Default
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Broadcaster{
		buffer:    buf,
		estimator: est,
		interval:  interval,
		sinks:     sinks,
		logger:    logger,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start runs the ticker loop. A zero interval or no sinks disables it.
func (b *Broadcaster) Start() error {
	if b.interval <= 0 || len(b.sinks) == 0 {
		b.logger.Info("broadcaster disabled", "interval", b.interval, "sinks", len(b.sinks))
		return nil
	}
	b.wg.Add(1)
	go b.run()
	return nil
}

func (b *Broadcaster) Stop() error {
	b.cancel()
	b.wg.Wait()
	return nil
}

func (b *Broadcaster) run() {
	defer b.wg.Done()
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := b.Tick(); err != nil {
				b.logger.Warn("publish update failed", "error", err)
			}
		case <-b.ctx.Done():
			return
		}
	}
}

// Tick computes one update and hands it to every sink. Sink errors are
// joined; one failing sink does not block the others.
func (b *Broadcaster) Tick() error {
	u := Current(b.buffer, b.estimator, b.now())
	b.logger.Debug("bpm update", "bpm", u.BPM.String(), "samples", u.Samples)
	var errs []error
	for _, s := range b.sinks {
		if err := s.Publish(u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
