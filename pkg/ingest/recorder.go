package ingest

import (
	"context"
	"log/slog"
	"sync"

	"ppg-monitor/pkg/model"
	"ppg-monitor/pkg/storage"
)

const DefaultQueueSize = 1024

// Recorder 单协程写入读数日志, HTTP 请求只负责入队
type Recorder struct {
	store  storage.ReadingStore
	logger *slog.Logger
	ch     chan *model.Reading
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu      sync.RWMutex
	stopped bool
}

func NewRecorder(ctx context.Context, store storage.ReadingStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Recorder{
		store:  store,
		logger: logger,
		ch:     make(chan *model.Reading, DefaultQueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (r *Recorder) Start() {
	r.wg.Add(1)
	go r.consume()
}

// Submit 入队一行, 队列满时阻塞直到 ctx 结束或 recorder 停止
func (r *Recorder) Submit(ctx context.Context, reading *model.Reading) error {
	if reading == nil {
		return storage.ErrNilReading
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return ErrRecorderStopped
	}
	select {
	case <-r.ctx.Done():
		return ErrRecorderStopped
	default:
	}
	select {
	case r.ch <- reading:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.ctx.Done():
		return ErrRecorderStopped
	}
}

func (r *Recorder) consume() {
	defer r.wg.Done()
	for {
		select {
		case reading := <-r.ch:
			r.write(reading)
		case <-r.ctx.Done():
			r.drain()
			return
		}
	}
}

// drain 停止前写完队列里剩下的行
func (r *Recorder) drain() {
	for {
		select {
		case reading := <-r.ch:
			r.write(reading)
		default:
			return
		}
	}
}

func (r *Recorder) write(reading *model.Reading) {
	if err := r.store.Append(reading); err != nil {
		r.logger.Error("append reading failed", "reading", reading.String(), "error", err)
		return
	}
	r.logger.Debug("reading recorded", "reading", reading.String())
}

// Stop 停止接收并等待已入队的行落盘
func (r *Recorder) Stop() {
	r.once.Do(func() {
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()
		r.cancel()
		r.wg.Wait()
	})
}
