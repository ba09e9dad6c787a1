package strategy

import (
	"fmt"
	"math"
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// base 各策略共用的构造参数
type base struct {
	game   lottery.Game
	stats  *stats.Statistics
	params config.Params
	rng    *rand.Rand
}

// checkGenerate 生成前的共用校验：count合法且历史够用
func (b *base) checkGenerate(name string, count, minHistory int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", lottery.ErrInvalidParameter, count)
	}
	if b.stats.Draws() < minHistory {
		return fmt.Errorf("%w: strategy %s needs %d draws, have %d",
			lottery.ErrInsufficientData, name, minHistory, b.stats.Draws())
	}
	return nil
}

// clampWindow 窗口按历史长度截断，不足一半时视为数据不足
func (b *base) clampWindow(window int) (int, error) {
	draws := b.stats.Draws()
	if draws*2 < window {
		return 0, fmt.Errorf("%w: window %d needs at least %d draws, have %d",
			lottery.ErrInsufficientData, window, (window+1)/2, draws)
	}
	if window > draws {
		return draws, nil
	}
	return window, nil
}

// pickBonus 按加权频率抽取特别号码
func (b *base) pickBonus() ([]int, error) {
	weights, err := b.stats.WeightedBonusFrequency(b.params.RecentWeight)
	if err != nil {
		return nil, err
	}
	return sampler.Sample(b.rng, weights, b.game.BonusCount)
}

// meanWeight 计算所选值的平均权重
func meanWeight(weights map[int]float64, selected []int) float64 {
	if len(selected) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range selected {
		total += weights[v]
	}
	return total / float64(len(selected))
}

// maxWeight 权重表中的最大值
func maxWeight(weights map[int]float64) float64 {
	max := 0.0
	for _, w := range weights {
		if w > max {
			max = w
		}
	}
	return max
}

// frequencyScore 按平均权重占最大权重的比例打分
func frequencyScore(weights map[int]float64, selected []int) float64 {
	max := maxWeight(weights)
	if max <= 0 {
		return 0
	}
	return meanWeight(weights, selected) / max * 100
}

// stddev 号码标准差，用于离散度加分
func stddev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += float64(v)
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}
