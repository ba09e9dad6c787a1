package strategy

import (
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// Coverage 覆盖策略：批量贪心生成，后续组合倾向批次内尚未覆盖的号码
type Coverage struct {
	base
}

// NewCoverage 创建覆盖策略
func NewCoverage(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Coverage {
	return &Coverage{base{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (c *Coverage) Name() string {
	return "coverage"
}

// MinHistory 获取所需的最小历史期数
func (c *Coverage) MinHistory() int {
	return 10
}

// 未覆盖号码加权、已覆盖号码降权的倍数
const (
	uncoveredBoost = 3.0
	coveredPenalty = 0.3
)

// Generate 生成count个候选组合
func (c *Coverage) Generate(count int) ([]lottery.Combination, error) {
	if err := c.checkGenerate(c.Name(), count, c.MinHistory()); err != nil {
		return nil, err
	}

	baseWeights, err := c.stats.WeightedFrequency(c.params.RecentWeight)
	if err != nil {
		return nil, err
	}

	covered := make(map[int]bool)
	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		weights := make(map[int]float64, len(baseWeights))
		for v, w := range baseWeights {
			// 保底权重，防止零频号码永远无法参与覆盖
			if w <= 0 {
				w = 0.1
			}
			if covered[v] {
				weights[v] = w * coveredPenalty
			} else if i > 0 {
				weights[v] = w * uncoveredBoost
			} else {
				weights[v] = w
			}
		}

		numbers, err := sampler.Sample(c.rng, weights, c.game.MainCount)
		if err != nil {
			return nil, err
		}
		bonus, err := c.pickBonus()
		if err != nil {
			return nil, err
		}

		newlyCovered := 0
		for _, n := range numbers {
			if !covered[n] {
				newlyCovered++
				covered[n] = true
			}
		}

		score := c.score(baseWeights, numbers, newlyCovered, i, count)
		combo, err := lottery.NewCombination(c.game, numbers, bonus, score, c.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("coverage strategy generated %d combinations covering %d values", len(combos), len(covered))
	return combos, nil
}

// score 在频率分与覆盖分之间折中，balanced模式下覆盖权重随序号增长
func (c *Coverage) score(weights map[int]float64, numbers []int, newlyCovered, index, count int) float64 {
	freqPart := frequencyScore(weights, numbers)
	coverPart := float64(newlyCovered) / float64(c.game.MainCount) * 100

	coverWeight := 0.5
	if c.params.Balanced && count > 1 {
		coverWeight = float64(index) / float64(count-1)
	}
	return lottery.ClampScore((1-coverWeight)*freqPart + coverWeight*coverPart)
}
