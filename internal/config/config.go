package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Charset  string `yaml:"charset"`
}

type SweepConfig struct {
	// 草稿未指定时的兜底值
	DefaultMaxRuns      int `yaml:"default_max_runs"`
	DefaultParallelRuns int `yaml:"default_parallel_runs"`
	// range 型参数未给 step 时展开的采样点数
	RangeSamplePoints int `yaml:"range_sample_points"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 默认值
	if config.Sweep.DefaultMaxRuns <= 0 {
		config.Sweep.DefaultMaxRuns = 10
	}
	if config.Sweep.DefaultParallelRuns <= 0 {
		config.Sweep.DefaultParallelRuns = 2
	}
	if config.Sweep.RangeSamplePoints <= 0 {
		config.Sweep.RangeSamplePoints = 4
	}

	return &config, nil
}
