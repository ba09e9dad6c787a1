package strategy

import (
	"math"
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// RiskReward 风险收益策略：低风险跟随频率，高风险反转权重追求独特性
type RiskReward struct {
	base
	risk float64 // 已归一化到[0,1]
}

// NewRiskReward 创建风险收益策略，风险等级在构造时归一化一次
func NewRiskReward(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *RiskReward {
	return &RiskReward{
		base: base{game: game, stats: st, params: params, rng: rng},
		risk: params.NormalizedRiskLevel(),
	}
}

// Name 获取策略名称
func (r *RiskReward) Name() string {
	return "riskreward"
}

// MinHistory 获取所需的最小历史期数
func (r *RiskReward) MinHistory() int {
	return 10
}

// Generate 生成count个候选组合
func (r *RiskReward) Generate(count int) ([]lottery.Combination, error) {
	if err := r.checkGenerate(r.Name(), count, r.MinHistory()); err != nil {
		return nil, err
	}

	freqWeights, err := r.stats.WeightedFrequency(r.params.RecentWeight)
	if err != nil {
		return nil, err
	}

	max := maxWeight(freqWeights)
	// 风险权重在频率与反频率之间插值
	weights := make(map[int]float64, len(freqWeights))
	for v, w := range freqWeights {
		inverse := max - w + 1
		weights[v] = (1-r.risk)*(w+0.1) + r.risk*inverse
	}

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := sampler.Sample(r.rng, weights, r.game.MainCount)
		if err != nil {
			return nil, err
		}
		bonus, err := r.pickBonus()
		if err != nil {
			return nil, err
		}

		score := r.score(freqWeights, numbers)
		combo, err := lottery.NewCombination(r.game, numbers, bonus, score, r.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("riskreward strategy generated %d combinations at risk %.2f", len(combos), r.risk)
	return combos, nil
}

// score 低风险按频率打分，高风险按独特性打分，再按风险等级混合
func (r *RiskReward) score(freqWeights map[int]float64, numbers []int) float64 {
	freqPart := frequencyScore(freqWeights, numbers)
	uniquePart := r.uniquenessScore(freqWeights, numbers)
	return lottery.ClampScore((1-r.risk)*freqPart + r.risk*uniquePart)
}

// uniquenessScore 独特性：反频率为主，叠加非典型和值与间隔波动加分
func (r *RiskReward) uniquenessScore(freqWeights map[int]float64, numbers []int) float64 {
	max := maxWeight(freqWeights)
	inverse := 0.0
	if max > 0 {
		for _, n := range numbers {
			inverse += (max - freqWeights[n]) / max
		}
		inverse = inverse / float64(len(numbers)) * 70
	}

	// 和值偏离历史均值越远越独特，上限20分
	sumDist := r.stats.SumDistribution()
	span := float64(sumDist.Max - sumDist.Min)
	atypical := 0.0
	if span > 0 {
		atypical = math.Abs(float64(lottery.Sum(numbers))-sumDist.Mean) / span * 40
		if atypical > 20 {
			atypical = 20
		}
	}

	// 间隔波动大的号码更难被跟风选中，上限10分
	variability := 0.0
	gaps := r.stats.GapAll()
	for _, n := range numbers {
		if info := gaps[n]; len(info.Gaps) > 1 {
			variability += stddev(info.Gaps)
		}
	}
	variability = variability / float64(len(numbers))
	if variability > 10 {
		variability = 10
	}

	return inverse + atypical + variability
}
