package model

import (
	"strconv"
	"strings"
	"time"
)

// FieldNames 是 CSV 日志的列顺序, 不可调整
var FieldNames = []string{"timestamp", "human_time", "mac", "ir1", "ir2", "ir3", "spo2", "temperature"}

const HumanTimeLayout = "2006-01-02T15:04:05Z"

// Reading 传感器上报的一行原始数据, 除时间外均按原样透传
type Reading struct {
	Timestamp   int64  `json:"timestamp"`
	HumanTime   string `json:"human_time"`
	MAC         string `json:"mac"`
	IR1         string `json:"ir1"`
	IR2         string `json:"ir2"`
	IR3         string `json:"ir3"`
	SpO2        string `json:"spo2"`
	Temperature string `json:"temperature"`
}

func NewReading(ts int64) *Reading {
	return &Reading{
		Timestamp: ts,
		HumanTime: FormatHumanTime(ts),
	}
}

func FormatHumanTime(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(HumanTimeLayout)
}

// Record 按 FieldNames 的顺序返回一行
func (r *Reading) Record() []string {
	return []string{
		strconv.FormatInt(r.Timestamp, 10),
		r.HumanTime,
		r.MAC,
		r.IR1,
		r.IR2,
		r.IR3,
		r.SpO2,
		r.Temperature,
	}
}

// 返回类似 "ts=1700000000,mac=AA:BB" 的字符串, 只用于日志
func (r *Reading) String() string {
	var b strings.Builder
	b.WriteString("ts=")
	b.WriteString(strconv.FormatInt(r.Timestamp, 10))
	if r.MAC != "" {
		b.WriteString(",mac=")
		b.WriteString(r.MAC)
	}
	return b.String()
}
