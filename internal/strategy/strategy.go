package strategy

import (
	"fmt"
	"sort"

	"lottery-engine/internal/lottery"
)

// Strategy 组合生成策略接口
type Strategy interface {
	// Name 获取策略名称
	Name() string

	// MinHistory 获取所需的最小历史期数
	MinHistory() int

	// Generate 生成count个候选组合
	Generate(count int) ([]lottery.Combination, error)
}

// Registry 策略注册表
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry 创建策略注册表
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register 注册策略，重复注册返回错误
func (r *Registry) Register(s Strategy) error {
	name := s.Name()
	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("%w: strategy already registered: %s", lottery.ErrInvalidParameter, name)
	}
	r.strategies[name] = s
	return nil
}

// Get 按名称获取策略
func (r *Registry) Get(name string) (Strategy, error) {
	s, exists := r.strategies[name]
	if !exists {
		return nil, fmt.Errorf("%w: strategy not found: %s", lottery.ErrInvalidParameter, name)
	}
	return s, nil
}

// Names 获取已注册的策略名称（有序）
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
