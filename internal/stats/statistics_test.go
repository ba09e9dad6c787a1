package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottery-engine/internal/lottery"
)

// 单号玩法，便于构造精确的频率场景
var miniGame = lottery.Game{Name: "mini", MainMax: 10, MainCount: 1, BonusMax: 5, BonusCount: 1}

func miniDraw(t *testing.T, number, bonus int) lottery.DrawRecord {
	t.Helper()
	record, err := lottery.NewDrawRecord(miniGame, time.Now(), []int{number}, []int{bonus})
	require.NoError(t, err)
	return record
}

func euroDraw(t *testing.T, numbers []int, bonus []int) lottery.DrawRecord {
	t.Helper()
	record, err := lottery.NewDrawRecord(lottery.Euromillions, time.Now(), numbers, bonus)
	require.NoError(t, err)
	return record
}

// 单号50域玩法：号码7每期必出时的频率与区段分布
func TestSingleNumberDominantScenario(t *testing.T) {
	game := lottery.Game{Name: "single50", MainMax: 50, MainCount: 1, BonusMax: 12, BonusCount: 1}
	history := make([]lottery.DrawRecord, 10)
	for i := range history {
		record, err := lottery.NewDrawRecord(game, time.Now(), []int{7}, []int{3})
		require.NoError(t, err)
		history[i] = record
	}

	st, err := New(game, history)
	require.NoError(t, err)

	assert.Equal(t, 10, st.Frequency()[7])
	assert.Equal(t, []int{7}, st.Hot(1))
	assert.Equal(t, map[string]int{
		"1-10": 10, "11-20": 0, "21-30": 0, "31-40": 0, "41-50": 0,
	}, st.RangeDistribution(10))
}

// 同一快照重建两次得到完全一致的频率表
func TestFrequencyRebuildIdempotent(t *testing.T) {
	history := []lottery.DrawRecord{
		euroDraw(t, []int{7, 13, 25, 38, 44}, []int{2, 9}),
		euroDraw(t, []int{1, 2, 3, 4, 5}, []int{1, 2}),
	}
	first, err := New(lottery.Euromillions, history)
	require.NoError(t, err)
	second, err := New(lottery.Euromillions, history)
	require.NoError(t, err)

	assert.Equal(t, first.Frequency(), second.Frequency())
	assert.Equal(t, first.BonusFrequency(), second.BonusFrequency())
}

func TestNewRejectsEmptyHistory(t *testing.T) {
	_, err := New(lottery.Euromillions, nil)
	assert.ErrorIs(t, err, lottery.ErrInsufficientData)
}

// 号码7每期必出时，频率表与区段分布应精确反映
func TestFrequencySingleDominantNumber(t *testing.T) {
	history := make([]lottery.DrawRecord, 10)
	for i := range history {
		history[i] = miniDraw(t, 7, 3)
	}

	st, err := New(miniGame, history)
	require.NoError(t, err)

	freq := st.Frequency()
	assert.Equal(t, 10, freq[7])
	for v := 1; v <= 10; v++ {
		if v != 7 {
			assert.Equal(t, 0, freq[v], "value %d", v)
		}
	}

	dist := st.RangeDistribution(10)
	assert.Equal(t, 10, dist["1-10"])
	assert.Equal(t, []string{"1-10"}, st.RangeBuckets(10))

	assert.Equal(t, []int{7}, st.Hot(1))
}

// 频率表总和恒等于期数乘以每期号码数
func TestFrequencySumInvariant(t *testing.T) {
	history := []lottery.DrawRecord{
		euroDraw(t, []int{7, 13, 25, 38, 44}, []int{2, 9}),
		euroDraw(t, []int{1, 2, 3, 4, 5}, []int{1, 2}),
		euroDraw(t, []int{10, 20, 30, 40, 50}, []int{5, 12}),
	}
	st, err := New(lottery.Euromillions, history)
	require.NoError(t, err)

	total := 0
	for _, c := range st.Frequency() {
		total += c
	}
	assert.Equal(t, len(history)*lottery.Euromillions.MainCount, total)

	bonusTotal := 0
	for _, c := range st.BonusFrequency() {
		bonusTotal += c
	}
	assert.Equal(t, len(history)*lottery.Euromillions.BonusCount, bonusTotal)
}

func TestWeightedFrequency(t *testing.T) {
	// 10期历史：最近2期出号码1，更早8期出号码2
	history := make([]lottery.DrawRecord, 0, 10)
	history = append(history, miniDraw(t, 1, 1), miniDraw(t, 1, 1))
	for i := 0; i < 8; i++ {
		history = append(history, miniDraw(t, 2, 1))
	}
	st, err := New(miniGame, history)
	require.NoError(t, err)

	// blend=0时等于全量频率
	weighted, err := st.WeightedFrequency(0)
	require.NoError(t, err)
	assert.InDelta(t, 2, weighted[1], 1e-9)
	assert.InDelta(t, 8, weighted[2], 1e-9)

	// blend=1时只看最近20%窗口（2期，全是号码1），放大到全量质量
	weighted, err = st.WeightedFrequency(1)
	require.NoError(t, err)
	assert.InDelta(t, 10, weighted[1], 1e-9)
	assert.InDelta(t, 0, weighted[2], 1e-9)

	// 中间值按比例混合
	weighted, err = st.WeightedFrequency(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*2+0.5*10, weighted[1], 1e-9)
	assert.InDelta(t, 0.5*8, weighted[2], 1e-9)

	_, err = st.WeightedFrequency(1.5)
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)
	_, err = st.WeightedFrequency(-0.1)
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)
}

// 频率并列时热号冷号都按号码升序
func TestHotColdTieBreaksAscending(t *testing.T) {
	history := []lottery.DrawRecord{
		miniDraw(t, 9, 1),
		miniDraw(t, 4, 1),
		miniDraw(t, 9, 1),
		miniDraw(t, 4, 1),
	}
	st, err := New(miniGame, history)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 9}, st.Hot(2))
	// 未出现的号码全部并列0次，取最小的几个
	assert.Equal(t, []int{1, 2, 3}, st.Cold(3))
}

func TestGapAnalysis(t *testing.T) {
	// 号码5出现在第0期和第3期（最近优先），之间隔2期
	history := []lottery.DrawRecord{
		miniDraw(t, 5, 1),
		miniDraw(t, 1, 1),
		miniDraw(t, 2, 1),
		miniDraw(t, 5, 1),
		miniDraw(t, 3, 1),
	}
	st, err := New(miniGame, history)
	require.NoError(t, err)

	info, err := st.Gap(5)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, info.Gaps)
	assert.InDelta(t, 2.0, info.AverageGap, 1e-9)
	assert.Equal(t, 0, info.SinceLast)
	assert.False(t, info.Overdue)

	// 号码3只在最老一期出现，距今4期，无间隔样本，视为超期
	info, err = st.Gap(3)
	require.NoError(t, err)
	assert.Empty(t, info.Gaps)
	assert.Equal(t, 4, info.SinceLast)
	assert.True(t, info.Overdue)

	// 从未出现的号码
	info, err = st.Gap(10)
	require.NoError(t, err)
	assert.Equal(t, len(history), info.SinceLast)
	assert.True(t, info.Overdue)

	_, err = st.Gap(11)
	assert.ErrorIs(t, err, lottery.ErrInvalidParameter)

	all := st.GapAll()
	assert.Len(t, all, miniGame.MainMax)
}

func TestRecentFrequencyWindow(t *testing.T) {
	history := []lottery.DrawRecord{
		miniDraw(t, 1, 1),
		miniDraw(t, 1, 1),
		miniDraw(t, 2, 1),
		miniDraw(t, 2, 1),
	}
	st, err := New(miniGame, history)
	require.NoError(t, err)

	recent := st.RecentFrequency(2)
	assert.Equal(t, 2, recent[1])
	assert.Equal(t, 0, recent[2])

	// 窗口超过历史长度时自动截断
	recent = st.RecentFrequency(100)
	assert.Equal(t, 2, recent[1])
	assert.Equal(t, 2, recent[2])
}

func TestEvenOddDistribution(t *testing.T) {
	history := []lottery.DrawRecord{
		euroDraw(t, []int{2, 4, 6, 8, 10}, []int{1, 2}), // 5偶
		euroDraw(t, []int{1, 3, 5, 7, 9}, []int{1, 2}),  // 0偶
	}
	st, err := New(lottery.Euromillions, history)
	require.NoError(t, err)

	eo := st.EvenOddDistribution()
	assert.InDelta(t, 0.5, eo.EvenRatio, 1e-9)
	assert.InDelta(t, 0.5, eo.OddRatio, 1e-9)
	require.Len(t, eo.Histogram, 6)
	assert.Equal(t, 1, eo.Histogram[0])
	assert.Equal(t, 1, eo.Histogram[5])
}

func TestSumDistribution(t *testing.T) {
	history := []lottery.DrawRecord{
		euroDraw(t, []int{1, 2, 3, 4, 5}, []int{1, 2}),      // 和15
		euroDraw(t, []int{10, 20, 30, 40, 50}, []int{1, 2}), // 和150
		euroDraw(t, []int{5, 10, 15, 20, 25}, []int{1, 2}),  // 和75
	}
	st, err := New(lottery.Euromillions, history)
	require.NoError(t, err)

	dist := st.SumDistribution()
	assert.Equal(t, 15, dist.Min)
	assert.Equal(t, 150, dist.Max)
	assert.InDelta(t, 80.0, dist.Mean, 1e-9)
	assert.InDelta(t, 75.0, dist.Median, 1e-9)
	assert.Equal(t, 1, dist.Histogram["0-24"])
	assert.Equal(t, 1, dist.Histogram["75-99"])
	assert.Equal(t, 1, dist.Histogram["150-174"])
}

func TestConsecutiveAnalysis(t *testing.T) {
	history := []lottery.DrawRecord{
		euroDraw(t, []int{1, 2, 3, 10, 20}, []int{1, 2}),  // 两对连号
		euroDraw(t, []int{5, 15, 25, 35, 45}, []int{1, 2}), // 无连号
	}
	st, err := New(lottery.Euromillions, history)
	require.NoError(t, err)

	cons := st.ConsecutiveAnalysis()
	assert.Equal(t, []int{2, 0}, cons.PerDraw)
	assert.Equal(t, 2, cons.Max)
	assert.InDelta(t, 1.0, cons.Mean, 1e-9)
	assert.InDelta(t, 50.0, cons.PercentWithAny, 1e-9)
}

// 统计对象构建后不受外部修改历史切片影响
func TestStatisticsImmutableSnapshot(t *testing.T) {
	history := []lottery.DrawRecord{
		miniDraw(t, 7, 3),
		miniDraw(t, 8, 3),
	}
	st, err := New(miniGame, history)
	require.NoError(t, err)

	history[0] = miniDraw(t, 1, 1)
	assert.Equal(t, 1, st.Frequency()[7])

	// 返回的频率表是副本
	freq := st.Frequency()
	freq[7] = 999
	assert.Equal(t, 1, st.Frequency()[7])
}
