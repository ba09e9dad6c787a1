package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config 应用程序配置结构
type Config struct {
	App    App    `yaml:"app"`
	Game   Game   `yaml:"game"`
	Engine Engine `yaml:"engine"`
	Params Params `yaml:"params"`
}

// App 应用程序配置
type App struct {
	LogLevel string `yaml:"log_level"`
	Seed     int64  `yaml:"seed"` // 0表示按时间取种子
}

// Game 玩法配置：预定义名称或显式参数
type Game struct {
	Name       string `yaml:"name"`
	MainMax    int    `yaml:"main_max"`
	MainCount  int    `yaml:"main_count"`
	BonusMax   int    `yaml:"bonus_max"`
	BonusCount int    `yaml:"bonus_count"`
}

// Engine 引擎运行配置
type Engine struct {
	Combinations int      `yaml:"combinations"` // 每个策略生成的组合数
	Strategies   []string `yaml:"strategies"`   // 参与生成的策略名
	Fusion       Fusion   `yaml:"fusion"`
}

// Fusion 融合层配置
type Fusion struct {
	Enabled     bool `yaml:"enabled"`
	Count       int  `yaml:"count"`        // 融合后保留的组合数
	NumberCap   int  `yaml:"number_cap"`   // 单个号码在结果批次中的最大复用次数
	StrategyCap int  `yaml:"strategy_cap"` // 单个策略在结果批次中的最大复用次数
}

// Params 策略参数，全部显式配置，不存在隐藏状态
type Params struct {
	RecentWeight     float64 `yaml:"recent_weight"`
	HotRatio         float64 `yaml:"hot_ratio"`
	LookbackPeriod   int     `yaml:"lookback_period"`
	StrataType       string  `yaml:"strata_type"`
	BalanceFactor    float64 `yaml:"balance_factor"`
	Balanced         bool    `yaml:"balanced"`
	RiskLevel        float64 `yaml:"risk_level"` // 接受1-10整数刻度或0-1小数刻度
	RecentDrawsCount int     `yaml:"recent_draws_count"`
	PriorType        string  `yaml:"prior_type"`
	UpdateMethod     string  `yaml:"update_method"`
	SmoothingFactor  float64 `yaml:"smoothing_factor"`
	Lag              int     `yaml:"lag"`
	WindowSize       int     `yaml:"window_size"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
		},
		Game: Game{
			Name: "euromillions",
		},
		Engine: Engine{
			Combinations: 5,
			Strategies:   []string{"frequency", "coverage", "riskreward"},
			Fusion: Fusion{
				Enabled:     true,
				Count:       10,
				NumberCap:   2,
				StrategyCap: 3,
			},
		},
		Params: Params{
			RecentWeight:     0.6,
			HotRatio:         0.7,
			LookbackPeriod:   30,
			StrataType:       "range",
			BalanceFactor:    0.7,
			Balanced:         true,
			RiskLevel:        5,
			RecentDrawsCount: 20,
			PriorType:        "frequency",
			UpdateMethod:     "full",
			SmoothingFactor:  0.1,
			Lag:              1,
			WindowSize:       10,
		},
	}
}

// LoadConfig 加载配置文件，缺省项使用默认值
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate 在入口处校验所有参数范围
func (c *Config) Validate() error {
	if c.Engine.Combinations < 1 {
		return fmt.Errorf("engine.combinations must be >= 1, got %d", c.Engine.Combinations)
	}
	if len(c.Engine.Strategies) == 0 {
		return fmt.Errorf("engine.strategies must not be empty")
	}
	if c.Engine.Fusion.Enabled {
		if c.Engine.Fusion.Count < 1 {
			return fmt.Errorf("engine.fusion.count must be >= 1, got %d", c.Engine.Fusion.Count)
		}
		if c.Engine.Fusion.NumberCap < 1 {
			return fmt.Errorf("engine.fusion.number_cap must be >= 1, got %d", c.Engine.Fusion.NumberCap)
		}
		if c.Engine.Fusion.StrategyCap < 1 {
			return fmt.Errorf("engine.fusion.strategy_cap must be >= 1, got %d", c.Engine.Fusion.StrategyCap)
		}
	}
	return c.Params.Validate()
}

// Validate 校验策略参数范围
func (p *Params) Validate() error {
	if p.RecentWeight < 0 || p.RecentWeight > 1 {
		return fmt.Errorf("params.recent_weight must be in [0,1], got %v", p.RecentWeight)
	}
	if p.HotRatio < 0 || p.HotRatio > 1 {
		return fmt.Errorf("params.hot_ratio must be in [0,1], got %v", p.HotRatio)
	}
	if p.LookbackPeriod < 10 || p.LookbackPeriod > 100 {
		return fmt.Errorf("params.lookback_period must be in [10,100], got %d", p.LookbackPeriod)
	}
	switch p.StrataType {
	case "range", "pattern", "sum":
	default:
		return fmt.Errorf("params.strata_type must be one of range/pattern/sum, got %q", p.StrataType)
	}
	if p.BalanceFactor < 0 || p.BalanceFactor > 1 {
		return fmt.Errorf("params.balance_factor must be in [0,1], got %v", p.BalanceFactor)
	}
	if p.RiskLevel < 0 || p.RiskLevel > 10 {
		return fmt.Errorf("params.risk_level must be in [1,10] or [0,1], got %v", p.RiskLevel)
	}
	if p.RecentDrawsCount < 5 || p.RecentDrawsCount > 50 {
		return fmt.Errorf("params.recent_draws_count must be in [5,50], got %d", p.RecentDrawsCount)
	}
	switch p.PriorType {
	case "uniform", "frequency":
	default:
		return fmt.Errorf("params.prior_type must be uniform or frequency, got %q", p.PriorType)
	}
	switch p.UpdateMethod {
	case "full", "incremental":
	default:
		return fmt.Errorf("params.update_method must be full or incremental, got %q", p.UpdateMethod)
	}
	if p.SmoothingFactor < 0 {
		return fmt.Errorf("params.smoothing_factor must be >= 0, got %v", p.SmoothingFactor)
	}
	if p.Lag < 1 || p.Lag > 5 {
		return fmt.Errorf("params.lag must be in [1,5], got %d", p.Lag)
	}
	if p.WindowSize < 5 || p.WindowSize > 30 {
		return fmt.Errorf("params.window_size must be in [5,30], got %d", p.WindowSize)
	}
	return nil
}

// NormalizedRiskLevel 将双刻度风险等级归一化到[0,1]，只在边界处转换一次
func (p *Params) NormalizedRiskLevel() float64 {
	if p.RiskLevel > 1 {
		return p.RiskLevel / 10.0
	}
	return p.RiskLevel
}
