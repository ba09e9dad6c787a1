package model

import (
	"fmt"
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// generator 各模型生成器共用的构造参数
type generator struct {
	game   lottery.Game
	stats  *stats.Statistics
	params config.Params
	rng    *rand.Rand
}

// checkGenerate 生成前的共用校验
func (g *generator) checkGenerate(name string, count, minHistory int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", lottery.ErrInvalidParameter, count)
	}
	if g.stats.Draws() < minHistory {
		return fmt.Errorf("%w: model %s needs %d draws, have %d",
			lottery.ErrInsufficientData, name, minHistory, g.stats.Draws())
	}
	return nil
}

// pickBonus 按加权频率抽取特别号码
func (g *generator) pickBonus() ([]int, error) {
	weights, err := g.stats.WeightedBonusFrequency(g.params.RecentWeight)
	if err != nil {
		return nil, err
	}
	return sampler.Sample(g.rng, weights, g.game.BonusCount)
}

// normalize 权重表归一化为概率分布，总质量为零时返回均匀分布
func normalize(weights map[int]float64) map[int]float64 {
	total := 0.0
	for _, w := range weights {
		total += w
	}

	out := make(map[int]float64, len(weights))
	if total <= 0 {
		uniform := 1.0 / float64(len(weights))
		for v := range weights {
			out[v] = uniform
		}
		return out
	}
	for v, w := range weights {
		out[v] = w / total
	}
	return out
}
