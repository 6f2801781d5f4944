package storage

import (
	"io"

	"ppg-monitor/pkg/model"
)

// Buffer 最近 IR 样本的有界缓冲
type Buffer interface {
	Push(timestamp, ir float64)

	Snapshot() (values, timestamps []float64)

	Recent(n int) []float64

	Len() int
}

// ReadingStore 原始读数日志
type ReadingStore interface {
	Append(r *model.Reading) error

	Open() (io.ReadCloser, error)
}
