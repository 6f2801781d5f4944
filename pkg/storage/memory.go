package storage

import (
	"sync"

	"ppg-monitor/pkg/model"
)

const DefaultCapacity = 1000

// SignalBuffer 固定容量的环形缓冲, 时间戳与数值同进同出.
// 写满后覆盖最旧的样本.
type SignalBuffer struct {
	samples []model.Sample
	head    int // 最旧样本的位置
	count   int
	mutex   sync.RWMutex
}

func NewSignalBuffer(capacity int) (*SignalBuffer, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &SignalBuffer{
		samples: make([]model.Sample, capacity),
	}, nil
}

func (sb *SignalBuffer) Push(timestamp, ir float64) {
	sb.mutex.Lock()
	defer sb.mutex.Unlock()
	capacity := len(sb.samples)
	if sb.count < capacity {
		sb.samples[(sb.head+sb.count)%capacity] = model.Sample{Timestamp: timestamp, IR: ir}
		sb.count++
		return
	}
	sb.samples[sb.head] = model.Sample{Timestamp: timestamp, IR: ir}
	sb.head = (sb.head + 1) % capacity
}

func (sb *SignalBuffer) Snapshot() (values, timestamps []float64) {
	sb.mutex.RLock()
	defer sb.mutex.RUnlock()
	return sb.ordered(sb.count).Split()
}

// Recent 返回最近 n 个 IR 值, 按时间顺序
func (sb *SignalBuffer) Recent(n int) []float64 {
	sb.mutex.RLock()
	defer sb.mutex.RUnlock()
	if n > sb.count {
		n = sb.count
	}
	if n < 0 {
		n = 0
	}
	values, _ := sb.ordered(n).Split()
	return values
}

func (sb *SignalBuffer) Len() int {
	sb.mutex.RLock()
	defer sb.mutex.RUnlock()
	return sb.count
}

func (sb *SignalBuffer) Cap() int {
	return len(sb.samples)
}

// ordered 取最后 n 个样本的拷贝, 调用方持有锁
func (sb *SignalBuffer) ordered(n int) model.Samples {
	capacity := len(sb.samples)
	out := make(model.Samples, 0, n)
	start := sb.head + sb.count - n
	for i := 0; i < n; i++ {
		out = out.Append(sb.samples[(start+i)%capacity])
	}
	return out
}
