package strategy

import (
	"math/rand"
	"sort"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// Bias 认知偏差规避策略：加权大众玩家回避的号码，降低与人群撞号的概率
type Bias struct {
	base
}

// NewBias 创建认知偏差规避策略
func NewBias(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Bias {
	return &Bias{base{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (b *Bias) Name() string {
	return "bias"
}

// MinHistory 获取所需的最小历史期数
func (b *Bias) MinHistory() int {
	return 5
}

const (
	birthdayLimit    = 31  // 生日号上限，大众偏好1-31
	nonBirthdayBoost = 2.0 // 超出生日范围的号码加权
	avoidedBoost     = 1.5 // 迷信回避号码加权
)

// 大众因迷信回避的号码
var avoidedValues = map[int]bool{13: true}

// Generate 生成count个候选组合
func (b *Bias) Generate(count int) ([]lottery.Combination, error) {
	if err := b.checkGenerate(b.Name(), count, b.MinHistory()); err != nil {
		return nil, err
	}

	weights := make(map[int]float64, b.game.MainMax)
	for v := 1; v <= b.game.MainMax; v++ {
		w := 1.0
		if v > birthdayLimit {
			w *= nonBirthdayBoost
		}
		if avoidedValues[v] {
			w *= avoidedBoost
		}
		weights[v] = w
	}

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := sampler.Sample(b.rng, weights, b.game.MainCount)
		if err != nil {
			return nil, err
		}
		bonus, err := b.pickBonus()
		if err != nil {
			return nil, err
		}

		sort.Ints(numbers)
		combo, err := lottery.NewCombination(b.game, numbers, bonus, b.score(numbers), b.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("bias strategy generated %d combinations", len(combos))
	return combos, nil
}

// score 奖励非整十和值、无连号、高低号分布均匀的组合
func (b *Bias) score(numbers []int) float64 {
	score := 40.0

	if lottery.Sum(numbers)%10 != 0 {
		score += 20
	}

	consecutive := false
	for i := 1; i < len(numbers); i++ {
		if numbers[i] == numbers[i-1]+1 {
			consecutive = true
			break
		}
	}
	if !consecutive {
		score += 20
	}

	// 高低号都有则加分
	mid := b.game.MainMax / 2
	low, high := 0, 0
	for _, n := range numbers {
		if n <= mid {
			low++
		} else {
			high++
		}
	}
	if low > 0 && high > 0 {
		score += 20
	}
	return lottery.ClampScore(score)
}
