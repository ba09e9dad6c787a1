package fusion

import (
	"fmt"
	"math/rand"
	"sort"

	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/stats"
)

// Pool 一个策略的候选组合池
type Pool struct {
	Name   string
	Combos []lottery.Combination
}

// CrossStrategy 跨策略结构交叉：按固定位次拆分从各源池取号，
// 同一候选内跳过已用号码，池耗尽时从全部源池的并集随机补齐。
func CrossStrategy(rng *rand.Rand, game lottery.Game, pools []Pool, split []int) (lottery.Combination, error) {
	if len(pools) < 2 {
		return lottery.Combination{}, fmt.Errorf("%w: cross-strategy fusion needs at least 2 pools, got %d",
			lottery.ErrInvalidParameter, len(pools))
	}
	if len(split) != len(pools) {
		return lottery.Combination{}, fmt.Errorf("%w: split size %d does not match %d pools",
			lottery.ErrInvalidParameter, len(split), len(pools))
	}
	total := 0
	for _, n := range split {
		if n < 0 {
			return lottery.Combination{}, fmt.Errorf("%w: negative split entry %d", lottery.ErrInvalidParameter, n)
		}
		total += n
	}
	if total != game.MainCount {
		return lottery.Combination{}, fmt.Errorf("%w: split sums to %d, need %d",
			lottery.ErrInvalidParameter, total, game.MainCount)
	}
	for _, pool := range pools {
		if len(pool.Combos) == 0 {
			return lottery.Combination{}, fmt.Errorf("%w: empty pool %q", lottery.ErrInvalidParameter, pool.Name)
		}
	}

	used := make(map[int]bool)
	numbers := make([]int, 0, game.MainCount)
	scoreSum := 0.0

	for i, pool := range pools {
		source := pool.Combos[rng.Intn(len(pool.Combos))]
		scoreSum += source.Score

		taken := 0
		for _, idx := range rng.Perm(len(source.Numbers)) {
			if taken >= split[i] {
				break
			}
			n := source.Numbers[idx]
			if used[n] {
				continue
			}
			used[n] = true
			numbers = append(numbers, n)
			taken++
		}
	}

	// 撞号导致的缺口从并集随机补齐
	if len(numbers) < game.MainCount {
		union := poolUnion(pools, used)
		for _, idx := range rng.Perm(len(union)) {
			if len(numbers) >= game.MainCount {
				break
			}
			used[union[idx]] = true
			numbers = append(numbers, union[idx])
		}
	}
	// 并集也不够时退化为全域补齐
	for _, idx := range rng.Perm(game.MainMax) {
		if len(numbers) >= game.MainCount {
			break
		}
		if !used[idx+1] {
			used[idx+1] = true
			numbers = append(numbers, idx+1)
		}
	}

	bonus := crossBonus(rng, game, pools)
	score := scoreSum / float64(len(pools))

	combo, err := lottery.NewCombination(game, numbers, bonus, score, "cross_strategy")
	if err != nil {
		return lottery.Combination{}, err
	}
	logger.Debugf("cross-strategy fusion produced %s from %d pools", lottery.FormatNumbers(combo.Numbers), len(pools))
	return combo, nil
}

// crossBonus 前两个源池各出一个特别号码，去重后从全域补齐
func crossBonus(rng *rand.Rand, game lottery.Game, pools []Pool) []int {
	used := make(map[int]bool)
	bonus := make([]int, 0, game.BonusCount)
	for i := 0; i < 2 && i < len(pools) && len(bonus) < game.BonusCount; i++ {
		source := pools[i].Combos[rng.Intn(len(pools[i].Combos))]
		for _, b := range source.Bonus {
			if !used[b] {
				used[b] = true
				bonus = append(bonus, b)
				break
			}
		}
	}
	for _, idx := range rng.Perm(game.BonusMax) {
		if len(bonus) >= game.BonusCount {
			break
		}
		if !used[idx+1] {
			used[idx+1] = true
			bonus = append(bonus, idx+1)
		}
	}
	return bonus
}

func poolUnion(pools []Pool, used map[int]bool) []int {
	seen := make(map[int]bool)
	var union []int
	for _, pool := range pools {
		for _, combo := range pool.Combos {
			for _, n := range combo.Numbers {
				if !used[n] && !seen[n] {
					seen[n] = true
					union = append(union, n)
				}
			}
		}
	}
	sort.Ints(union)
	return union
}

// PositionalAverage 位次平均融合：逐位round平均，撞号从双亲并集回填。
// 组合与自身平均返回原组合。
func PositionalAverage(rng *rand.Rand, game lottery.Game, a, b lottery.Combination) (lottery.Combination, error) {
	used := make(map[int]bool)
	numbers := make([]int, 0, game.MainCount)
	for i := 0; i < game.MainCount; i++ {
		avg := roundHalfUp(float64(a.Numbers[i]+b.Numbers[i]) / 2)
		if !used[avg] {
			used[avg] = true
			numbers = append(numbers, avg)
		}
	}
	numbers = backfill(rng, game, numbers, used, parentUnion(a, b))

	bonus := mergeBonus(rng, game, a, b)
	score := (a.Score + b.Score) / 2

	return lottery.NewCombination(game, numbers, bonus, score, "positional_average")
}

// FrequencyWeighted 频率加权融合：逐位保留加权频率更高的亲本号码
func FrequencyWeighted(rng *rand.Rand, game lottery.Game, a, b lottery.Combination, st *stats.Statistics, blend float64) (lottery.Combination, error) {
	weights, err := st.WeightedFrequency(blend)
	if err != nil {
		return lottery.Combination{}, err
	}

	used := make(map[int]bool)
	numbers := make([]int, 0, game.MainCount)
	for i := 0; i < game.MainCount; i++ {
		pick := a.Numbers[i]
		if weights[b.Numbers[i]] > weights[pick] {
			pick = b.Numbers[i]
		}
		if !used[pick] {
			used[pick] = true
			numbers = append(numbers, pick)
		}
	}
	numbers = backfill(rng, game, numbers, used, parentUnion(a, b))

	bonus := mergeBonus(rng, game, a, b)
	score := (a.Score + b.Score) / 2

	return lottery.NewCombination(game, numbers, bonus, score, "frequency_weighted")
}

// parentUnion 双亲主号码并集（有序）
func parentUnion(a, b lottery.Combination) []int {
	seen := make(map[int]bool)
	var union []int
	for _, n := range a.Numbers {
		if !seen[n] {
			seen[n] = true
			union = append(union, n)
		}
	}
	for _, n := range b.Numbers {
		if !seen[n] {
			seen[n] = true
			union = append(union, n)
		}
	}
	sort.Ints(union)
	return union
}

// backfill 先从双亲并集回填缺口，仍不足时从全域补齐
func backfill(rng *rand.Rand, game lottery.Game, numbers []int, used map[int]bool, union []int) []int {
	for _, idx := range rng.Perm(len(union)) {
		if len(numbers) >= game.MainCount {
			break
		}
		if !used[union[idx]] {
			used[union[idx]] = true
			numbers = append(numbers, union[idx])
		}
	}
	for _, idx := range rng.Perm(game.MainMax) {
		if len(numbers) >= game.MainCount {
			break
		}
		if !used[idx+1] {
			used[idx+1] = true
			numbers = append(numbers, idx+1)
		}
	}
	return numbers
}

// mergeBonus 双亲特别号码并集截断，不足时从全域补齐
func mergeBonus(rng *rand.Rand, game lottery.Game, a, b lottery.Combination) []int {
	used := make(map[int]bool)
	bonus := make([]int, 0, game.BonusCount)
	for _, n := range append(append([]int(nil), a.Bonus...), b.Bonus...) {
		if len(bonus) >= game.BonusCount {
			break
		}
		if !used[n] {
			used[n] = true
			bonus = append(bonus, n)
		}
	}
	for _, idx := range rng.Perm(game.BonusMax) {
		if len(bonus) >= game.BonusCount {
			break
		}
		if !used[idx+1] {
			used[idx+1] = true
			bonus = append(bonus, idx+1)
		}
	}
	return bonus
}

func roundHalfUp(v float64) int {
	return int(v + 0.5)
}
