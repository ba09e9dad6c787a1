package fusion

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottery-engine/internal/lottery"
	"lottery-engine/internal/stats"
)

func combo(t *testing.T, numbers []int, bonus []int, score float64, strategy string) lottery.Combination {
	t.Helper()
	c, err := lottery.NewCombination(lottery.Euromillions, numbers, bonus, score, strategy)
	require.NoError(t, err)
	return c
}

func testPools(t *testing.T) []Pool {
	t.Helper()
	return []Pool{
		{Name: "frequency", Combos: []lottery.Combination{
			combo(t, []int{1, 2, 3, 4, 5}, []int{1, 2}, 80, "frequency"),
		}},
		{Name: "coverage", Combos: []lottery.Combination{
			combo(t, []int{10, 11, 12, 13, 14}, []int{3, 4}, 60, "coverage"),
		}},
		{Name: "markov", Combos: []lottery.Combination{
			combo(t, []int{20, 21, 22, 23, 24}, []int{5, 6}, 40, "markov"),
		}},
	}
}

func TestCrossStrategyTakesSplitFromPools(t *testing.T) {
	pools := testPools(t)
	rng := rand.New(rand.NewSource(1))

	fused, err := CrossStrategy(rng, lottery.Euromillions, pools, []int{2, 2, 1})
	require.NoError(t, err)
	require.NoError(t, lottery.ValidateCombination(lottery.Euromillions, fused))
	assert.Equal(t, "cross_strategy", fused.Strategy)

	// 源池号码互不重叠，每个池恰好贡献split份额
	fromA, fromB, fromC := 0, 0, 0
	for _, n := range fused.Numbers {
		switch {
		case n <= 5:
			fromA++
		case n >= 10 && n <= 14:
			fromB++
		case n >= 20 && n <= 24:
			fromC++
		}
	}
	assert.Equal(t, 2, fromA)
	assert.Equal(t, 2, fromB)
	assert.Equal(t, 1, fromC)

	// 分数为源组合均分
	assert.InDelta(t, 60.0, fused.Score, 1e-9)
}

func TestCrossStrategySkipsUsedNumbers(t *testing.T) {
	// 两个池的组合号码完全重叠，缺口必须从并集外补齐
	overlap := []Pool{
		{Name: "a", Combos: []lottery.Combination{combo(t, []int{1, 2, 3, 4, 5}, []int{1, 2}, 50, "a")}},
		{Name: "b", Combos: []lottery.Combination{combo(t, []int{1, 2, 3, 4, 5}, []int{3, 4}, 50, "b")}},
	}
	rng := rand.New(rand.NewSource(2))

	fused, err := CrossStrategy(rng, lottery.Euromillions, overlap, []int{3, 2})
	require.NoError(t, err)
	require.NoError(t, lottery.ValidateCombination(lottery.Euromillions, fused))
	assert.Len(t, fused.Numbers, 5)
}

func TestCrossStrategyRejectsBadArguments(t *testing.T) {
	pools := testPools(t)
	rng := rand.New(rand.NewSource(1))

	_, err := CrossStrategy(rng, lottery.Euromillions, pools[:1], []int{5})
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)

	_, err = CrossStrategy(rng, lottery.Euromillions, pools, []int{2, 3})
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)

	_, err = CrossStrategy(rng, lottery.Euromillions, pools, []int{2, 2, 2})
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)

	empty := append([]Pool{}, pools...)
	empty[2] = Pool{Name: "empty"}
	_, err = CrossStrategy(rng, lottery.Euromillions, empty, []int{2, 2, 1})
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)
}

// 组合与自身做位次平均应返回同样的号码、特别号码和分数
func TestPositionalAverageIdempotent(t *testing.T) {
	a := combo(t, []int{7, 13, 25, 38, 44}, []int{2, 9}, 72, "frequency")
	rng := rand.New(rand.NewSource(4))

	fused, err := PositionalAverage(rng, lottery.Euromillions, a, a)
	require.NoError(t, err)
	assert.Equal(t, a.Numbers, fused.Numbers)
	assert.Equal(t, a.Bonus, fused.Bonus)
	assert.Equal(t, a.Score, fused.Score)
	assert.Equal(t, "positional_average", fused.Strategy)
}

func TestPositionalAverageMergesParents(t *testing.T) {
	a := combo(t, []int{10, 11, 20, 30, 40}, []int{1, 2}, 50, "a")
	b := combo(t, []int{10, 13, 20, 30, 40}, []int{3, 4}, 70, "b")
	rng := rand.New(rand.NewSource(4))

	fused, err := PositionalAverage(rng, lottery.Euromillions, a, b)
	require.NoError(t, err)
	require.NoError(t, lottery.ValidateCombination(lottery.Euromillions, fused))
	assert.Equal(t, []int{10, 12, 20, 30, 40}, fused.Numbers)
	// 特别号码取双亲并集截断
	assert.Equal(t, []int{1, 2}, fused.Bonus)
	assert.InDelta(t, 60.0, fused.Score, 1e-9)
}

func TestFrequencyWeightedKeepsHigherFrequencyParent(t *testing.T) {
	// 1-5每期必出，41-45从未出现
	history := make([]lottery.DrawRecord, 20)
	for i := range history {
		record, err := lottery.NewDrawRecord(lottery.Euromillions, time.Now(), []int{1, 2, 3, 4, 5}, []int{1, 2})
		require.NoError(t, err)
		history[i] = record
	}
	st, err := stats.New(lottery.Euromillions, history)
	require.NoError(t, err)

	a := combo(t, []int{1, 2, 3, 4, 5}, []int{1, 2}, 80, "a")
	b := combo(t, []int{41, 42, 43, 44, 45}, []int{3, 4}, 40, "b")
	rng := rand.New(rand.NewSource(6))

	fused, err := FrequencyWeighted(rng, lottery.Euromillions, a, b, st, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, fused.Numbers)
	assert.Equal(t, "frequency_weighted", fused.Strategy)
}

func TestSelectDiverseEnforcesCaps(t *testing.T) {
	// 同一策略、同样号码的候选远多于上限
	pool := make([]lottery.Combination, 0, 12)
	for i := 0; i < 6; i++ {
		pool = append(pool, combo(t, []int{1, 2, 3, 4, 5}, []int{1, 2}, float64(90-i), "frequency"))
	}
	for i := 0; i < 6; i++ {
		base := 10 + i*5
		pool = append(pool, combo(t, []int{base, base + 1, base + 2, base + 3, base + 4}, []int{3, 4}, float64(60-i), "coverage"))
	}

	selected, err := SelectDiverse(pool, 10, 2, 3)
	require.NoError(t, err)

	numberUse := make(map[int]int)
	strategyUse := make(map[string]int)
	for _, c := range selected {
		strategyUse[c.Strategy]++
		for _, n := range c.Numbers {
			numberUse[n]++
		}
	}
	for n, uses := range numberUse {
		assert.LessOrEqual(t, uses, 2, "number %d", n)
	}
	for s, uses := range strategyUse {
		assert.LessOrEqual(t, uses, 3, "strategy %s", s)
	}

	// 重叠号码的frequency候选最多进2个
	assert.Equal(t, 2, strategyUse["frequency"])

	// 结果按分数降序
	for i := 1; i < len(selected); i++ {
		assert.GreaterOrEqual(t, selected[i-1].Score, selected[i].Score)
	}
}

func TestSelectDiverseStopsAtN(t *testing.T) {
	pool := make([]lottery.Combination, 0, 10)
	for i := 0; i < 10; i++ {
		base := 1 + i*5
		if base+4 > 50 {
			break
		}
		pool = append(pool, combo(t, []int{base, base + 1, base + 2, base + 3, base + 4}, []int{1, 2}, float64(50+i), "s"+string(rune('a'+i))))
	}

	selected, err := SelectDiverse(pool, 3, 2, 3)
	require.NoError(t, err)
	assert.Len(t, selected, 3)

	_, err = SelectDiverse(pool, 0, 2, 3)
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)
}
