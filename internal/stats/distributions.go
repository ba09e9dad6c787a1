package stats

import (
	"fmt"
	"sort"

	"lottery-engine/internal/lottery"
)

// GapInfo 单个号码的间隔分析结果
type GapInfo struct {
	Gaps       []int   `json:"gaps"`       // 相邻两次出现之间的期数
	AverageGap float64 `json:"avg_gap"`    // 平均间隔
	SinceLast  int     `json:"since_last"` // 距最近一次出现的期数
	Overdue    bool    `json:"overdue"`    // 是否超过平均间隔未出
}

// EvenOddStats 奇偶分布结果
type EvenOddStats struct {
	EvenRatio float64 `json:"even_ratio"`
	OddRatio  float64 `json:"odd_ratio"`
	Histogram []int   `json:"histogram"` // 每期偶数个数0..MainCount的分布
}

// SumStats 和值分布结果
type SumStats struct {
	Min       int            `json:"min"`
	Max       int            `json:"max"`
	Mean      float64        `json:"mean"`
	Median    float64        `json:"median"`
	Histogram map[string]int `json:"histogram"`
}

// ConsecutiveStats 连号分析结果
type ConsecutiveStats struct {
	PerDraw        []int   `json:"per_draw"` // 每期相邻号码对数，按最近优先
	Max            int     `json:"max"`
	Mean           float64 `json:"mean"`
	PercentWithAny float64 `json:"percent_with_any"` // 至少出现一对连号的期数占比
}

// Gap 单个主号码的间隔分析，索引按最近优先
func (s *Statistics) Gap(value int) (GapInfo, error) {
	if value < 1 || value > s.game.MainMax {
		return GapInfo{}, fmt.Errorf("%w: value %d out of range 1-%d", lottery.ErrInvalidParameter, value, s.game.MainMax)
	}

	// 出现位置，history[0]为最新一期
	var occurrences []int
	for i, record := range s.history {
		for _, n := range record.Numbers {
			if n == value {
				occurrences = append(occurrences, i)
				break
			}
		}
	}

	info := GapInfo{SinceLast: len(s.history)}
	if len(occurrences) == 0 {
		// 从未出现：间隔未知，视为超期
		info.Overdue = true
		return info, nil
	}

	info.SinceLast = occurrences[0]
	for i := 0; i+1 < len(occurrences); i++ {
		info.Gaps = append(info.Gaps, occurrences[i+1]-occurrences[i]-1)
	}
	if len(info.Gaps) > 0 {
		total := 0
		for _, g := range info.Gaps {
			total += g
		}
		info.AverageGap = float64(total) / float64(len(info.Gaps))
	}
	info.Overdue = float64(info.SinceLast) > info.AverageGap
	return info, nil
}

// GapAll 全部主号码的间隔分析
func (s *Statistics) GapAll() map[int]GapInfo {
	all := make(map[int]GapInfo, s.game.MainMax)
	for v := 1; v <= s.game.MainMax; v++ {
		info, _ := s.Gap(v)
		all[v] = info
	}
	return all
}

// RangeDistribution 主号码按区段统计出现次数，bucketSize<=0时取默认宽度10
func (s *Statistics) RangeDistribution(bucketSize int) map[string]int {
	if bucketSize <= 0 {
		bucketSize = 10
	}

	dist := make(map[string]int)
	for lo := 1; lo <= s.game.MainMax; lo += bucketSize {
		hi := lo + bucketSize - 1
		if hi > s.game.MainMax {
			hi = s.game.MainMax
		}
		dist[rangeLabel(lo, hi)] = 0
	}

	for _, record := range s.history {
		for _, n := range record.Numbers {
			lo := ((n-1)/bucketSize)*bucketSize + 1
			hi := lo + bucketSize - 1
			if hi > s.game.MainMax {
				hi = s.game.MainMax
			}
			dist[rangeLabel(lo, hi)]++
		}
	}
	return dist
}

// RangeBuckets 按区段宽度返回有序的区段标签
func (s *Statistics) RangeBuckets(bucketSize int) []string {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	var labels []string
	for lo := 1; lo <= s.game.MainMax; lo += bucketSize {
		hi := lo + bucketSize - 1
		if hi > s.game.MainMax {
			hi = s.game.MainMax
		}
		labels = append(labels, rangeLabel(lo, hi))
	}
	return labels
}

func rangeLabel(lo, hi int) string {
	return fmt.Sprintf("%d-%d", lo, hi)
}

// EvenOddDistribution 奇偶分布：整体比例与每期偶数个数直方图
func (s *Statistics) EvenOddDistribution() EvenOddStats {
	result := EvenOddStats{
		Histogram: make([]int, s.game.MainCount+1),
	}

	even, total := 0, 0
	for _, record := range s.history {
		evenInDraw := lottery.CountEven(record.Numbers)
		result.Histogram[evenInDraw]++
		even += evenInDraw
		total += len(record.Numbers)
	}
	if total > 0 {
		result.EvenRatio = float64(even) / float64(total)
		result.OddRatio = 1 - result.EvenRatio
	}
	return result
}

// SumDistribution 和值分布：最小/最大/均值/中位数与固定区段直方图
func (s *Statistics) SumDistribution() SumStats {
	sums := make([]int, len(s.history))
	for i, record := range s.history {
		sums[i] = lottery.Sum(record.Numbers)
	}
	sort.Ints(sums)

	result := SumStats{
		Min:       sums[0],
		Max:       sums[len(sums)-1],
		Histogram: make(map[string]int),
	}

	total := 0
	for _, v := range sums {
		total += v
	}
	result.Mean = float64(total) / float64(len(sums))
	mid := len(sums) / 2
	if len(sums)%2 == 0 {
		result.Median = float64(sums[mid-1]+sums[mid]) / 2
	} else {
		result.Median = float64(sums[mid])
	}

	// 和值区段宽度25，覆盖理论范围
	const bandWidth = 25
	minSum := sumOfRange(1, s.game.MainCount)
	maxSum := sumOfRange(s.game.MainMax-s.game.MainCount+1, s.game.MainCount)
	for lo := (minSum / bandWidth) * bandWidth; lo <= maxSum; lo += bandWidth {
		result.Histogram[rangeLabel(lo, lo+bandWidth-1)] = 0
	}
	for _, v := range sums {
		lo := (v / bandWidth) * bandWidth
		result.Histogram[rangeLabel(lo, lo+bandWidth-1)]++
	}
	return result
}

func sumOfRange(start, count int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += start + i
	}
	return total
}

// ConsecutiveAnalysis 连号分析：每期相邻号码对数与整体统计
func (s *Statistics) ConsecutiveAnalysis() ConsecutiveStats {
	result := ConsecutiveStats{
		PerDraw: make([]int, len(s.history)),
	}

	withAny, total := 0, 0
	for i, record := range s.history {
		pairs := 0
		for j := 1; j < len(record.Numbers); j++ {
			if record.Numbers[j] == record.Numbers[j-1]+1 {
				pairs++
			}
		}
		result.PerDraw[i] = pairs
		if pairs > result.Max {
			result.Max = pairs
		}
		if pairs > 0 {
			withAny++
		}
		total += pairs
	}
	result.Mean = float64(total) / float64(len(s.history))
	result.PercentWithAny = float64(withAny) / float64(len(s.history)) * 100
	return result
}
