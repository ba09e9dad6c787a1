package strategy

import (
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// Temporal 时间模式策略：只看最近lookback_period期，超期未出的号码加权
type Temporal struct {
	base
}

// NewTemporal 创建时间模式策略
func NewTemporal(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Temporal {
	return &Temporal{base{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (t *Temporal) Name() string {
	return "temporal"
}

// MinHistory 获取所需的最小历史期数
func (t *Temporal) MinHistory() int {
	return (t.params.LookbackPeriod + 1) / 2
}

// overdueBoost 超期号码的加权倍数
const overdueBoost = 2.0

// Generate 生成count个候选组合
func (t *Temporal) Generate(count int) ([]lottery.Combination, error) {
	if err := t.checkGenerate(t.Name(), count, t.MinHistory()); err != nil {
		return nil, err
	}

	window, err := t.clampWindow(t.params.LookbackPeriod)
	if err != nil {
		return nil, err
	}

	// 窗口内频率作为基础权重，零频号码保留极小权重避免被完全排除
	recent := t.stats.RecentFrequency(window)
	weights := make(map[int]float64, len(recent))
	for v, c := range recent {
		weights[v] = float64(c) + 0.1
	}

	gaps := t.stats.GapAll()
	for v, info := range gaps {
		if info.Overdue {
			weights[v] *= overdueBoost
		}
	}

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := sampler.Sample(t.rng, weights, t.game.MainCount)
		if err != nil {
			return nil, err
		}
		bonus, err := t.pickBonus()
		if err != nil {
			return nil, err
		}

		// 模式强度乘以近期权重系数
		strength := frequencyScore(weights, numbers)
		score := strength * (0.5 + 0.5*t.params.RecentWeight)

		combo, err := lottery.NewCombination(t.game, numbers, bonus, score, t.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("temporal strategy generated %d combinations over %d-draw window", len(combos), window)
	return combos, nil
}
