// Package bpm estimates heart rate from a window of IR samples using
// threshold-based local maxima detection.
package bpm

import (
	"fmt"
	"math"
)

const (
	DefaultMinSamples      = 50
	DefaultThresholdFactor = 0.8
)

// Estimator holds the tuning knobs. The zero value is not usable; use
// NewEstimator or Default.
type Estimator struct {
	MinSamples      int
	ThresholdFactor float64
}

var Default = NewEstimator(DefaultMinSamples, DefaultThresholdFactor)

func NewEstimator(minSamples int, thresholdFactor float64) *Estimator {
	return &Estimator{
		MinSamples:      minSamples,
		ThresholdFactor: thresholdFactor,
	}
}

// Compute runs the default estimator.
func Compute(values, timestamps []float64) (float64, error) {
	return Default.Compute(values, timestamps)
}

// Peaks runs the default estimator's peak detection.
func Peaks(values, timestamps []float64) []float64 {
	return Default.Peaks(values, timestamps)
}

// Compute returns the heart rate in beats per minute, rounded to one
// decimal place. The inputs are not modified.
func (e *Estimator) Compute(values, timestamps []float64) (float64, error) {
	if len(values) < e.MinSamples {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(values), e.MinSamples)
	}
	if len(values) != len(timestamps) {
		return 0, fmt.Errorf("%w: %d values, %d timestamps", ErrMismatchedSeries, len(values), len(timestamps))
	}

	peaks := e.Peaks(values, timestamps)
	if len(peaks) < 2 {
		return 0, fmt.Errorf("%w: found %d", ErrNoPeaksDetected, len(peaks))
	}

	sum := 0.0
	for i := 1; i < len(peaks); i++ {
		sum += peaks[i] - peaks[i-1]
	}
	interval := sum / float64(len(peaks)-1)
	if interval <= 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return 0, fmt.Errorf("%w: %v s", ErrDegenerateInterval, interval)
	}

	bpm := 60.0 / interval
	if math.IsInf(bpm, 0) || math.IsNaN(bpm) {
		return 0, fmt.Errorf("%w: %v s", ErrDegenerateInterval, interval)
	}
	return math.Round(bpm*10) / 10, nil
}

// Peaks returns the timestamps of the local maxima of the DC-removed
// signal that exceed ThresholdFactor standard deviations. The first and
// last samples are never peaks.
func (e *Estimator) Peaks(values, timestamps []float64) []float64 {
	n := len(values)
	if n < 3 || len(timestamps) < n {
		return nil
	}

	x := removeDC(values)
	threshold := stddev(x) * e.ThresholdFactor

	var peaks []float64
	for i := 1; i < n-1; i++ {
		if x[i] > x[i-1] && x[i] > x[i+1] && x[i] > threshold {
			peaks = append(peaks, timestamps[i])
		}
	}
	return peaks
}

func removeDC(values []float64) []float64 {
	m := mean(values)
	x := make([]float64, len(values))
	for i, v := range values {
		x[i] = v - m
	}
	return x
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation (divides by N).
func stddev(values []float64) float64 {
	m := mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}
