package strategy

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// Stratified 分层策略：把号码域划分为层，按历史占比为各层分配名额。
// strata_type支持range（10宽区段）、pattern（奇偶）、sum（低中高三段）。
type Stratified struct {
	base
}

// NewStratified 创建分层策略
func NewStratified(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Stratified {
	return &Stratified{base{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (s *Stratified) Name() string {
	return "stratified"
}

// MinHistory 获取所需的最小历史期数
func (s *Stratified) MinHistory() int {
	return 10
}

// stratum 一个号码层及其目标占比
type stratum struct {
	values []int
	target float64
}

// Generate 生成count个候选组合
func (s *Stratified) Generate(count int) ([]lottery.Combination, error) {
	if err := s.checkGenerate(s.Name(), count, s.MinHistory()); err != nil {
		return nil, err
	}

	strata, err := s.buildStrata()
	if err != nil {
		return nil, err
	}

	weights, err := s.stats.WeightedFrequency(s.params.RecentWeight)
	if err != nil {
		return nil, err
	}

	allocation := s.allocate(strata)

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers := make([]int, 0, s.game.MainCount)
		for j, st := range strata {
			if allocation[j] == 0 {
				continue
			}
			picked, err := sampler.Sample(s.rng, subWeights(weights, st.values), allocation[j])
			if err != nil {
				return nil, err
			}
			numbers = append(numbers, picked...)
		}

		bonus, err := s.pickBonus()
		if err != nil {
			return nil, err
		}

		combo, err := lottery.NewCombination(s.game, numbers, bonus, s.score(strata, numbers), s.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("stratified strategy generated %d combinations (%s, %d strata)",
		len(combos), s.params.StrataType, len(strata))
	return combos, nil
}

// buildStrata 按配置的分层方式划分号码域并计算历史占比
func (s *Stratified) buildStrata() ([]stratum, error) {
	freq := s.stats.Frequency()

	var groups [][]int
	switch s.params.StrataType {
	case "range":
		for lo := 1; lo <= s.game.MainMax; lo += 10 {
			hi := lo + 9
			if hi > s.game.MainMax {
				hi = s.game.MainMax
			}
			groups = append(groups, valueRange(lo, hi))
		}
	case "pattern":
		var even, odd []int
		for v := 1; v <= s.game.MainMax; v++ {
			if v%2 == 0 {
				even = append(even, v)
			} else {
				odd = append(odd, v)
			}
		}
		groups = append(groups, even, odd)
	case "sum":
		// 低中高三段，间接控制和值落点
		third := s.game.MainMax / 3
		groups = append(groups,
			valueRange(1, third),
			valueRange(third+1, 2*third),
			valueRange(2*third+1, s.game.MainMax))
	default:
		return nil, fmt.Errorf("%w: unknown strata type %q", lottery.ErrInvalidParameter, s.params.StrataType)
	}

	total := 0
	for _, c := range freq {
		total += c
	}

	strata := make([]stratum, len(groups))
	for i, values := range groups {
		occurrences := 0
		for _, v := range values {
			occurrences += freq[v]
		}
		strata[i] = stratum{values: values}
		if total > 0 {
			strata[i].target = float64(occurrences) / float64(total)
		}
	}
	return strata, nil
}

// allocate 按balance_factor在历史占比与均匀分配之间插值，再用最大余数法取整
func (s *Stratified) allocate(strata []stratum) []int {
	equal := 1.0 / float64(len(strata))
	quotas := make([]float64, len(strata))
	for i, st := range strata {
		share := s.params.BalanceFactor*st.target + (1-s.params.BalanceFactor)*equal
		quotas[i] = share * float64(s.game.MainCount)
	}

	allocation := make([]int, len(strata))
	assigned := 0
	for i, q := range quotas {
		allocation[i] = int(q)
		if allocation[i] > len(strata[i].values) {
			allocation[i] = len(strata[i].values)
		}
		assigned += allocation[i]
	}

	// 剩余名额按小数部分从大到小补齐
	type rem struct {
		idx  int
		frac float64
	}
	order := make([]rem, len(quotas))
	for i, q := range quotas {
		order[i] = rem{idx: i, frac: q - math.Floor(q)}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].frac != order[j].frac {
			return order[i].frac > order[j].frac
		}
		return order[i].idx < order[j].idx
	})
	for _, r := range order {
		if assigned >= s.game.MainCount {
			break
		}
		if allocation[r.idx] < len(strata[r.idx].values) {
			allocation[r.idx]++
			assigned++
		}
	}
	// 极端配额下继续轮询补满
	for assigned < s.game.MainCount {
		for i := range allocation {
			if assigned >= s.game.MainCount {
				break
			}
			if allocation[i] < len(strata[i].values) {
				allocation[i]++
				assigned++
			}
		}
	}
	return allocation
}

// score 按实际层占比与目标占比的总偏差打分
func (s *Stratified) score(strata []stratum, numbers []int) float64 {
	deviation := 0.0
	for _, st := range strata {
		inStratum := 0
		for _, n := range numbers {
			for _, v := range st.values {
				if n == v {
					inStratum++
					break
				}
			}
		}
		actual := float64(inStratum) / float64(len(numbers))
		deviation += math.Abs(actual - st.target)
	}
	// 总变差除以2归一到[0,1]
	return lottery.ClampScore((1 - deviation/2) * 100)
}

func valueRange(lo, hi int) []int {
	values := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		values = append(values, v)
	}
	return values
}
