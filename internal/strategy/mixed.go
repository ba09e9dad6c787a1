package strategy

import (
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// Mixed 冷热混合策略：按hot_ratio从热号池抽取，剩余名额从冷号池补齐
type Mixed struct {
	base
}

// NewMixed 创建冷热混合策略
func NewMixed(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Mixed {
	return &Mixed{base{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (m *Mixed) Name() string {
	return "mixed"
}

// MinHistory 获取所需的最小历史期数
func (m *Mixed) MinHistory() int {
	return 10
}

// Generate 生成count个候选组合
func (m *Mixed) Generate(count int) ([]lottery.Combination, error) {
	if err := m.checkGenerate(m.Name(), count, m.MinHistory()); err != nil {
		return nil, err
	}

	weights, err := m.stats.WeightedFrequency(m.params.RecentWeight)
	if err != nil {
		return nil, err
	}

	// 一次排名后切成热号池与冷号池，保证两池不相交
	half := m.game.MainMax / 2
	ranked := m.stats.Hot(m.game.MainMax)
	hotPool := ranked[:half]
	coldPool := ranked[half:]

	hotCount := int(float64(m.game.MainCount) * m.params.HotRatio)
	if hotCount > m.game.MainCount {
		hotCount = m.game.MainCount
	}
	coldCount := m.game.MainCount - hotCount

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers := make([]int, 0, m.game.MainCount)

		if hotCount > 0 {
			picked, err := sampler.Sample(m.rng, subWeights(weights, hotPool), hotCount)
			if err != nil {
				return nil, err
			}
			numbers = append(numbers, picked...)
		}
		if coldCount > 0 {
			picked, err := sampler.Sample(m.rng, subWeights(weights, coldPool), coldCount)
			if err != nil {
				return nil, err
			}
			numbers = append(numbers, picked...)
		}

		bonus, err := m.pickBonus()
		if err != nil {
			return nil, err
		}

		// 频率分加离散度奖励，奖励上限5分
		diversity := stddev(numbers) / float64(m.game.MainMax) * 10
		if diversity > 5 {
			diversity = 5
		}
		score := frequencyScore(weights, numbers) + diversity

		combo, err := lottery.NewCombination(m.game, numbers, bonus, score, m.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("mixed strategy generated %d combinations (hot=%d cold=%d)", len(combos), hotCount, coldCount)
	return combos, nil
}

// subWeights 从权重表中截取给定值的子表
func subWeights(weights map[int]float64, values []int) map[int]float64 {
	sub := make(map[int]float64, len(values))
	for _, v := range values {
		sub[v] = weights[v]
	}
	return sub
}
