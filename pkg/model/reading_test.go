package model

import (
	"reflect"
	"testing"
)

func TestReading_Record(t *testing.T) {
	tests := []struct {
		name string
		r    *Reading
		want []string
	}{
		{
			"test.full.reading",
			&Reading{
				Timestamp:   1700000000,
				HumanTime:   "2023-11-14T22:13:20Z",
				MAC:         "AA:BB:CC",
				IR1:         "101",
				IR2:         "102",
				IR3:         "103",
				SpO2:        "98",
				Temperature: "36.5",
			},
			[]string{"1700000000", "2023-11-14T22:13:20Z", "AA:BB:CC", "101", "102", "103", "98", "36.5"},
		},
		{
			"test.empty.fields",
			NewReading(0),
			[]string{"0", "1970-01-01T00:00:00Z", "", "", "", "", "", ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Record()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Record() = %v, want %v", got, tt.want)
			}
			if len(got) != len(FieldNames) {
				t.Errorf("Record() has %d columns, header has %d", len(got), len(FieldNames))
			}
		})
	}
}

func TestReading_String(t *testing.T) {
	r := NewReading(1700000000)
	if got := r.String(); got != "ts=1700000000" {
		t.Errorf("String() = %v", got)
	}
	r.MAC = "AA:BB"
	if got := r.String(); got != "ts=1700000000,mac=AA:BB" {
		t.Errorf("String() = %v", got)
	}
}

func TestSamples_Split(t *testing.T) {
	var s Samples
	s = s.Append(Sample{Timestamp: 1.0, IR: 10})
	s = s.Append(Sample{Timestamp: 1.5, IR: 20})

	values, timestamps := s.Split()
	if !reflect.DeepEqual(values, []float64{10, 20}) {
		t.Errorf("values = %v", values)
	}
	if !reflect.DeepEqual(timestamps, []float64{1.0, 1.5}) {
		t.Errorf("timestamps = %v", timestamps)
	}

	values, timestamps = Samples{}.Split()
	if len(values) != 0 || len(timestamps) != 0 {
		t.Errorf("empty split = %v, %v", values, timestamps)
	}
}
