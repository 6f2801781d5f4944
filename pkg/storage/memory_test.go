package storage

import (
	"reflect"
	"sync"
	"testing"
)

// 辅助函数：创建指定容量的缓冲
func createTestBuffer(t *testing.T, capacity int) *SignalBuffer {
	t.Helper()
	sb, err := NewSignalBuffer(capacity)
	if err != nil {
		t.Fatalf("创建缓冲失败: %v", err)
	}
	return sb
}

// TestNewSignalBuffer 测试构造参数
func TestNewSignalBuffer(t *testing.T) {
	t.Run("正常容量", func(t *testing.T) {
		sb := createTestBuffer(t, 10)
		if sb.Cap() != 10 {
			t.Errorf("期望容量 10，实际 %d", sb.Cap())
		}
		if sb.Len() != 0 {
			t.Errorf("期望长度 0，实际 %d", sb.Len())
		}
	})

	t.Run("非法容量", func(t *testing.T) {
		for _, c := range []int{0, -1} {
			if _, err := NewSignalBuffer(c); err != ErrInvalidCapacity {
				t.Errorf("容量 %d: 期望错误 ErrInvalidCapacity，实际得到 %v", c, err)
			}
		}
	})
}

// TestSignalBuffer_Push 测试追加与淘汰
func TestSignalBuffer_Push(t *testing.T) {
	t.Run("空缓冲快照", func(t *testing.T) {
		sb := createTestBuffer(t, 5)
		values, timestamps := sb.Snapshot()
		if values == nil || timestamps == nil {
			t.Fatal("空缓冲应返回空切片而不是 nil")
		}
		if len(values) != 0 || len(timestamps) != 0 {
			t.Errorf("期望空快照，实际 %v %v", values, timestamps)
		}
	})

	t.Run("未写满时保持插入顺序", func(t *testing.T) {
		sb := createTestBuffer(t, 5)
		for i := 0; i < 3; i++ {
			sb.Push(float64(i), float64(i*10))
		}
		values, timestamps := sb.Snapshot()
		if !reflect.DeepEqual(values, []float64{0, 10, 20}) {
			t.Errorf("values = %v", values)
		}
		if !reflect.DeepEqual(timestamps, []float64{0, 1, 2}) {
			t.Errorf("timestamps = %v", timestamps)
		}
	})

	t.Run("写满后淘汰最旧样本", func(t *testing.T) {
		sb := createTestBuffer(t, 3)
		for i := 0; i < 7; i++ {
			sb.Push(float64(i), float64(100+i))
		}
		values, timestamps := sb.Snapshot()
		if !reflect.DeepEqual(values, []float64{104, 105, 106}) {
			t.Errorf("values = %v", values)
		}
		if !reflect.DeepEqual(timestamps, []float64{4, 5, 6}) {
			t.Errorf("timestamps = %v", timestamps)
		}
	})

	t.Run("任意次数写入后长度不超过容量且保留最近样本", func(t *testing.T) {
		const capacity = 4
		for n := 0; n <= 3*capacity; n++ {
			sb := createTestBuffer(t, capacity)
			for i := 0; i < n; i++ {
				sb.Push(float64(i), float64(i))
			}
			values, timestamps := sb.Snapshot()
			want := n
			if want > capacity {
				want = capacity
			}
			if len(values) != want || len(timestamps) != want || sb.Len() != want {
				t.Fatalf("n=%d: 期望长度 %d，实际 values=%d timestamps=%d", n, want, len(values), len(timestamps))
			}
			for i := range values {
				expected := float64(n - want + i)
				if values[i] != expected || timestamps[i] != expected {
					t.Fatalf("n=%d: 第 %d 个样本期望 %v，实际 %v/%v", n, i, expected, values[i], timestamps[i])
				}
			}
		}
	})

	t.Run("快照是拷贝", func(t *testing.T) {
		sb := createTestBuffer(t, 3)
		sb.Push(1, 1)
		values, _ := sb.Snapshot()
		values[0] = 999
		again, _ := sb.Snapshot()
		if again[0] != 1 {
			t.Errorf("修改快照影响了缓冲: %v", again)
		}
	})
}

// TestSignalBuffer_Recent 测试展示用的最近数据
func TestSignalBuffer_Recent(t *testing.T) {
	sb := createTestBuffer(t, 5)
	for i := 0; i < 8; i++ {
		sb.Push(float64(i), float64(i))
	}

	tests := []struct {
		name string
		n    int
		want []float64
	}{
		{"取最近两个", 2, []float64{6, 7}},
		{"超过长度", 10, []float64{3, 4, 5, 6, 7}},
		{"零个", 0, []float64{}},
		{"负数", -3, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sb.Recent(tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recent(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

// TestSignalBuffer_Concurrent 并发写入与读取, 快照两列始终等长
func TestSignalBuffer_Concurrent(t *testing.T) {
	sb := createTestBuffer(t, 100)
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				sb.Push(float64(i), float64(w))
			}
		}(w)
	}

	errs := make(chan string, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			values, timestamps := sb.Snapshot()
			if len(values) != len(timestamps) || len(values) > 100 {
				select {
				case errs <- "快照长度不一致":
				default:
				}
				return
			}
		}
	}()

	wg.Wait()
	close(errs)
	if msg, ok := <-errs; ok {
		t.Fatal(msg)
	}
	if sb.Len() != 100 {
		t.Errorf("期望长度 100，实际 %d", sb.Len())
	}
}
