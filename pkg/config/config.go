package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	CSV       CSVConfig       `yaml:"csv"`
	Buffer    BufferConfig    `yaml:"buffer"`
	Estimator EstimatorConfig `yaml:"estimator"`
	Publish   PublishConfig   `yaml:"publish"`
	NATS      NATSConfig      `yaml:"nats"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port  int  `yaml:"port"`
	Debug bool `yaml:"debug"`
}

type CSVConfig struct {
	File string `yaml:"file"`
}

type BufferConfig struct {
	Capacity    int `yaml:"capacity"`
	DisplaySize int `yaml:"display_size"`
}

type EstimatorConfig struct {
	MinSamples int `yaml:"min_samples"`
	// 为 nil 时取默认值, 显式写 0 表示任何高于均值的局部极大都算波峰
	ThresholdFactor *float64 `yaml:"threshold_factor"`
}

type PublishConfig struct {
	// 为 nil 时取默认值, 显式写 0 表示关闭推送
	Interval *time.Duration `yaml:"interval"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	DefaultPort            = 5000
	DefaultCSVFile         = "sensors.csv"
	DefaultCapacity        = 1000
	DefaultDisplaySize     = 200
	DefaultMinSamples      = 50
	DefaultThresholdFactor = 0.8
	DefaultPublishInterval = time.Second
	DefaultNATSSubject     = "ppg.bpm"
	DefaultLogLevel        = "info"
)

func NewConfig() *Config {
	return &Config{}
}

// Process 填充未设置的字段
func (c *Config) Process() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.CSV.File == "" {
		c.CSV.File = DefaultCSVFile
	}
	if c.Buffer.Capacity == 0 {
		c.Buffer.Capacity = DefaultCapacity
	}
	if c.Buffer.DisplaySize == 0 {
		c.Buffer.DisplaySize = DefaultDisplaySize
		if c.Buffer.DisplaySize > c.Buffer.Capacity {
			c.Buffer.DisplaySize = c.Buffer.Capacity
		}
	}
	if c.Estimator.MinSamples == 0 {
		c.Estimator.MinSamples = DefaultMinSamples
	}
	if c.Estimator.ThresholdFactor == nil {
		f := DefaultThresholdFactor
		c.Estimator.ThresholdFactor = &f
	}
	if c.Publish.Interval == nil {
		d := DefaultPublishInterval
		c.Publish.Interval = &d
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = DefaultNATSSubject
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// ApplyEnv 用环境变量覆盖配置, 变量名与旧版服务保持一致
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("CSV_FILE"); v != "" {
		c.CSV.File = v
	}
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return NewEnvError("PORT", v, err)
		}
		c.Server.Port = port
	}
	if v := getenv("DEBUG"); v != "" {
		c.Server.Debug = strings.ToLower(v) == "true"
	}
	if v := getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range [1, 65535]", c.Server.Port)
	}
	if c.CSV.File == "" {
		return fmt.Errorf("csv file is required")
	}
	if c.Buffer.Capacity <= 0 {
		return fmt.Errorf("buffer capacity (%d) must be positive", c.Buffer.Capacity)
	}
	if c.Buffer.DisplaySize <= 0 || c.Buffer.DisplaySize > c.Buffer.Capacity {
		return fmt.Errorf("buffer display_size (%d) must be in [1, capacity=%d]",
			c.Buffer.DisplaySize, c.Buffer.Capacity)
	}
	if c.Estimator.MinSamples < 3 {
		return fmt.Errorf("estimator min_samples (%d) must be >= 3", c.Estimator.MinSamples)
	}
	if c.Estimator.ThresholdFactor != nil && *c.Estimator.ThresholdFactor < 0 {
		return fmt.Errorf("estimator threshold_factor (%v) must be >= 0", *c.Estimator.ThresholdFactor)
	}
	if c.Publish.Interval != nil && *c.Publish.Interval < 0 {
		return fmt.Errorf("publish interval (%v) must be >= 0", *c.Publish.Interval)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

func (c *Config) ThresholdFactor() float64 {
	if c.Estimator.ThresholdFactor == nil {
		return DefaultThresholdFactor
	}
	return *c.Estimator.ThresholdFactor
}

// PublishInterval 返回推送间隔, 0 表示关闭
func (c *Config) PublishInterval() time.Duration {
	if c.Publish.Interval == nil {
		return DefaultPublishInterval
	}
	return *c.Publish.Interval
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
