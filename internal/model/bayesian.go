package model

import (
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// Bayesian 贝叶斯生成器：先验乘以近期窗口似然得到后验，按后验抽样。
// 后验只是启发式权重，不做严格推断。
type Bayesian struct {
	generator
}

// NewBayesian 创建贝叶斯生成器
func NewBayesian(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Bayesian {
	return &Bayesian{generator{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (b *Bayesian) Name() string {
	return "bayesian"
}

// MinHistory 获取所需的最小历史期数
func (b *Bayesian) MinHistory() int {
	return (b.params.RecentDrawsCount + 1) / 2
}

// Generate 生成count个候选组合
func (b *Bayesian) Generate(count int) ([]lottery.Combination, error) {
	if err := b.checkGenerate(b.Name(), count, b.MinHistory()); err != nil {
		return nil, err
	}

	posterior, err := b.posterior()
	if err != nil {
		return nil, err
	}

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := sampler.Sample(b.rng, posterior, b.game.MainCount)
		if err != nil {
			return nil, err
		}
		bonus, err := b.pickBonus()
		if err != nil {
			return nil, err
		}

		// 所选号码的后验质量即分数
		mass := 0.0
		for _, n := range numbers {
			mass += posterior[n]
		}

		combo, err := lottery.NewCombination(b.game, numbers, bonus, lottery.ClampScore(mass*100), b.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("bayesian model generated %d combinations (prior=%s update=%s)",
		len(combos), b.params.PriorType, b.params.UpdateMethod)
	return combos, nil
}

// posterior 构建一次后验分布，full为整批似然，incremental为逐期链式更新
func (b *Bayesian) posterior() (map[int]float64, error) {
	prior := b.prior()

	window := b.params.RecentDrawsCount
	if window > b.stats.Draws() {
		window = b.stats.Draws()
	}
	recent := b.stats.History()[:window]

	if b.params.UpdateMethod == "incremental" {
		// 从旧到新逐期更新后验
		posterior := prior
		for i := len(recent) - 1; i >= 0; i-- {
			posterior = b.update(posterior, recent[i:i+1])
		}
		return posterior, nil
	}
	return b.update(prior, recent), nil
}

// prior 先验分布：均匀或拉普拉斯平滑后的全量频率
func (b *Bayesian) prior() map[int]float64 {
	prior := make(map[int]float64, b.game.MainMax)
	if b.params.PriorType == "uniform" {
		uniform := 1.0 / float64(b.game.MainMax)
		for v := 1; v <= b.game.MainMax; v++ {
			prior[v] = uniform
		}
		return prior
	}

	freq := b.stats.Frequency()
	for v, c := range freq {
		prior[v] = float64(c) + b.params.SmoothingFactor
	}
	return normalize(prior)
}

// update 用一批开奖记录的平滑似然更新分布
func (b *Bayesian) update(dist map[int]float64, draws []lottery.DrawRecord) map[int]float64 {
	counts := make(map[int]float64, b.game.MainMax)
	for v := 1; v <= b.game.MainMax; v++ {
		counts[v] = b.params.SmoothingFactor
	}
	for _, record := range draws {
		for _, n := range record.Numbers {
			counts[n]++
		}
	}
	likelihood := normalize(counts)

	posterior := make(map[int]float64, len(dist))
	for v, p := range dist {
		posterior[v] = p * likelihood[v]
	}
	return normalize(posterior)
}
