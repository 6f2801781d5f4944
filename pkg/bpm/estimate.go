package bpm

import (
	"strconv"
)

// Estimate is an optional heart rate. Valid is false when no estimate
// could be produced.
type Estimate struct {
	Value float64
	Valid bool
}

func (e *Estimator) Estimate(values, timestamps []float64) Estimate {
	v, err := e.Compute(values, timestamps)
	if err != nil {
		return Estimate{}
	}
	return Estimate{Value: v, Valid: true}
}

// String renders "N/A" for a missing estimate.
func (est Estimate) String() string {
	if !est.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(est.Value, 'f', 1, 64)
}

func (est Estimate) MarshalJSON() ([]byte, error) {
	if !est.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, est.Value, 'f', 1, 64), nil
}
