package strategy

import (
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// Frequency 频率策略：按加权频率抽样，高频号码优先
type Frequency struct {
	base
}

// NewFrequency 创建频率策略
func NewFrequency(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Frequency {
	return &Frequency{base{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (f *Frequency) Name() string {
	return "frequency"
}

// MinHistory 获取所需的最小历史期数
func (f *Frequency) MinHistory() int {
	return 10
}

// Generate 生成count个候选组合
func (f *Frequency) Generate(count int) ([]lottery.Combination, error) {
	if err := f.checkGenerate(f.Name(), count, f.MinHistory()); err != nil {
		return nil, err
	}

	weights, err := f.stats.WeightedFrequency(f.params.RecentWeight)
	if err != nil {
		return nil, err
	}

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := sampler.Sample(f.rng, weights, f.game.MainCount)
		if err != nil {
			return nil, err
		}
		bonus, err := f.pickBonus()
		if err != nil {
			return nil, err
		}

		combo, err := lottery.NewCombination(f.game, numbers, bonus, frequencyScore(weights, numbers), f.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("frequency strategy generated %d combinations", len(combos))
	return combos, nil
}
