package bpm

import "errors"

// 以下错误均表示 "暂无估计值", 调用方不需要区分处理
var (
	ErrInsufficientData   = errors.New("insufficient samples for estimation")
	ErrMismatchedSeries   = errors.New("values and timestamps differ in length")
	ErrNoPeaksDetected    = errors.New("fewer than two peaks detected")
	ErrDegenerateInterval = errors.New("mean inter-beat interval is not positive")
)
