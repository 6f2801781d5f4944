// Package ingest turns sensor payloads into samples and readings.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ppg-monitor/pkg/model"
)

type payload map[string]any

func parsePayload(body []byte) (payload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var p payload
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidJSON)
	}
	return p, nil
}

// DecodePPG reads the "ir" field of a PPG payload. A missing or
// non-numeric ir becomes 0; the timestamp is the arrival time.
func DecodePPG(body []byte, now time.Time) (model.Sample, error) {
	p, err := parsePayload(body)
	if err != nil {
		return model.Sample{}, err
	}
	return model.Sample{
		Timestamp: UnixSeconds(now),
		IR:        toFloat(p["ir"]),
	}, nil
}

// DecodeReading builds a CSV row from a /data payload. Missing fields
// are left empty, timestamp defaults to now.
func DecodeReading(body []byte, now time.Time) (*model.Reading, error) {
	p, err := parsePayload(body)
	if err != nil {
		return nil, err
	}

	ts := now.Unix()
	if raw, ok := p["timestamp"]; ok && raw != nil {
		f, ok := asFloat(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimestamp, raw)
		}
		ts = int64(f)
	}

	r := model.NewReading(ts)
	r.MAC = toText(p["mac"])
	r.IR1 = toText(p["ir1"])
	r.IR2 = toText(p["ir2"])
	r.IR3 = toText(p["ir3"])
	r.SpO2 = toText(p["spo2"])
	r.Temperature = toText(p["temperature"])
	return r, nil
}

// UnixSeconds converts t to fractional seconds since the epoch.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func toFloat(v any) float64 {
	f, ok := asFloat(v)
	if !ok {
		return 0
	}
	return f
}

func asFloat(v any) (float64, bool) {
	var f float64
	var err error
	switch x := v.(type) {
	case json.Number:
		f, err = x.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
