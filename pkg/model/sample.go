package model

// Sample 一次 IR 通道读数, Timestamp 为到达时间(秒)
type Sample struct {
	Timestamp float64
	IR        float64
}

type Samples []Sample

func (s Samples) Append(sample Sample) Samples {
	return append(s, sample)
}

// Split 拆成两个等长序列, 供 bpm.Compute 使用
func (s Samples) Split() (values, timestamps []float64) {
	values = make([]float64, len(s))
	timestamps = make([]float64, len(s))
	for i, sample := range s {
		values[i] = sample.IR
		timestamps[i] = sample.Timestamp
	}
	return values, timestamps
}
