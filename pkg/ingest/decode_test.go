package ingest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var arrival = time.Unix(1700000000, 500_000_000)

func TestDecodePPG(t *testing.T) {
	tests := []struct {
		name string
		body string
		ir   float64
	}{
		{"数字", `{"ir": 51234}`, 51234},
		{"小数", `{"ir": 12.5}`, 12.5},
		{"数字字符串", `{"ir": " 321 "}`, 321},
		{"缺少字段", `{}`, 0},
		{"非数字字符串", `{"ir": "abc"}`, 0},
		{"null", `{"ir": null}`, 0},
		{"布尔", `{"ir": true}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := DecodePPG([]byte(tt.body), arrival)
			require.NoError(t, err)
			assert.Equal(t, tt.ir, s.IR)
			assert.InDelta(t, 1700000000.5, s.Timestamp, 1e-6)
		})
	}
}

func TestDecodePPG_InvalidJSON(t *testing.T) {
	for _, body := range []string{``, `{`, `[1,2]`, `null`, `"ir"`} {
		_, err := DecodePPG([]byte(body), arrival)
		assert.True(t, errors.Is(err, ErrInvalidJSON), "body %q: %v", body, err)
	}
}

func TestDecodeReading(t *testing.T) {
	t.Run("完整字段", func(t *testing.T) {
		body := `{"timestamp": 1700000000, "mac": "AA:BB", "ir1": 100, "ir2": "200", "ir3": 300.5, "spo2": 98, "temperature": 36.6}`
		r, err := DecodeReading([]byte(body), arrival)
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000), r.Timestamp)
		assert.Equal(t, "2023-11-14T22:13:20Z", r.HumanTime)
		assert.Equal(t, "AA:BB", r.MAC)
		assert.Equal(t, "100", r.IR1)
		assert.Equal(t, "200", r.IR2)
		assert.Equal(t, "300.5", r.IR3)
		assert.Equal(t, "98", r.SpO2)
		assert.Equal(t, "36.6", r.Temperature)
	})

	t.Run("缺省时间戳取到达时间", func(t *testing.T) {
		r, err := DecodeReading([]byte(`{"mac": "x"}`), arrival)
		require.NoError(t, err)
		assert.Equal(t, arrival.Unix(), r.Timestamp)
		assert.Equal(t, "", r.IR1)
		assert.Equal(t, "", r.Temperature)
	})

	t.Run("小数时间戳截断", func(t *testing.T) {
		r, err := DecodeReading([]byte(`{"timestamp": 1700000000.9}`), arrival)
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000), r.Timestamp)
	})

	t.Run("时间戳不是数字", func(t *testing.T) {
		_, err := DecodeReading([]byte(`{"timestamp": "soon"}`), arrival)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("无效 JSON", func(t *testing.T) {
		_, err := DecodeReading([]byte(`not json`), arrival)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})
}
