package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	configPath string
	dotenvPath string
	getenv     func(string) string
}

const (
	DefaultConfigPath = "config.yaml"
	DefaultDotenvPath = ".env"
)

func NewLoader(configPath string) *Loader {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return &Loader{configPath: configPath, dotenvPath: DefaultDotenvPath, getenv: os.Getenv}
}

// WithEnv 替换环境变量来源, 测试用
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// WithDotenv 指定 .env 文件路径, 空字符串表示不读取
func (l *Loader) WithDotenv(path string) *Loader {
	l.dotenvPath = path
	return l
}

// Load 读取配置文件, 填充默认值, 应用环境变量后校验.
// 默认路径下没有配置文件时只使用默认值.
func (l *Loader) Load() (*Config, error) {
	cfg := NewConfig()
	c, err := os.ReadFile(l.configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(c, cfg); err != nil {
			return nil, NewParseError(l.configPath, err)
		}
	case errors.Is(err, fs.ErrNotExist) && l.configPath == DefaultConfigPath:
	default:
		return nil, NewReadError(l.configPath, err)
	}
	cfg.Process()
	getenv, err := l.env()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// env 把 .env 文件叠加在环境变量之下, 已设置的环境变量优先.
// 文件不存在时直接使用环境变量.
func (l *Loader) env() (func(string) string, error) {
	if l.dotenvPath == "" {
		return l.getenv, nil
	}
	vars, err := godotenv.Read(l.dotenvPath)
	if errors.Is(err, fs.ErrNotExist) {
		return l.getenv, nil
	}
	if err != nil {
		return nil, NewDotenvError(l.dotenvPath, err)
	}
	getenv := l.getenv
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return vars[key]
	}, nil
}

func (l *Loader) getConfigPath() string {
	return l.configPath
}
