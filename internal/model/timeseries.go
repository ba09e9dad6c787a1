package model

import (
	"fmt"
	"math/rand"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// TimeSeries 时间序列生成器：对每个号码的出现指示序列做趋势加季节分解，
// 按下一窗口的预测倾向抽样。
type TimeSeries struct {
	generator
}

// NewTimeSeries 创建时间序列生成器
func NewTimeSeries(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *TimeSeries {
	return &TimeSeries{generator{game: game, stats: st, params: params, rng: rng}}
}

// Name 获取策略名称
func (t *TimeSeries) Name() string {
	return "timeseries"
}

// MinHistory 获取所需的最小历史期数，窗口不足一半才拒绝，否则截断
func (t *TimeSeries) MinHistory() int {
	return (t.params.WindowSize + 1) / 2
}

// Generate 生成count个候选组合
func (t *TimeSeries) Generate(count int) ([]lottery.Combination, error) {
	if err := t.checkGenerate(t.Name(), count, t.MinHistory()); err != nil {
		return nil, err
	}

	forecasts, err := t.forecastAll()
	if err != nil {
		return nil, err
	}
	distribution := normalize(forecasts)

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := sampler.Sample(t.rng, forecasts, t.game.MainCount)
		if err != nil {
			return nil, err
		}
		bonus, err := t.pickBonus()
		if err != nil {
			return nil, err
		}

		// 所选号码占预测总质量的份额即分数
		mass := 0.0
		for _, n := range numbers {
			mass += distribution[n]
		}

		combo, err := lottery.NewCombination(t.game, numbers, bonus, lottery.ClampScore(mass*100), t.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("timeseries model generated %d combinations (window=%d)", len(combos), t.params.WindowSize)
	return combos, nil
}

// forecastAll 对全部主号码计算下一期预测倾向
func (t *TimeSeries) forecastAll() (map[int]float64, error) {
	window := t.params.WindowSize
	draws := t.stats.Draws()
	if draws*2 < window {
		return nil, fmt.Errorf("%w: window %d needs at least %d draws, have %d",
			lottery.ErrInsufficientData, window, (window+1)/2, draws)
	}
	if window > draws {
		window = draws
	}

	history := t.stats.History()
	forecasts := make(map[int]float64, t.game.MainMax)
	for v := 1; v <= t.game.MainMax; v++ {
		forecasts[v] = forecast(indicatorSeries(history, v), window)
	}
	return forecasts, nil
}

// indicatorSeries 号码出现指示序列，从旧到新
func indicatorSeries(history []lottery.DrawRecord, value int) []float64 {
	series := make([]float64, len(history))
	for i, record := range history {
		for _, n := range record.Numbers {
			if n == value {
				series[len(history)-1-i] = 1
				break
			}
		}
	}
	return series
}

// forecast 滑动窗口分解：移动平均作趋势，按相位平均的偏差作季节项，
// 预测值为趋势末端加下一相位季节项，下限为0
func forecast(series []float64, window int) float64 {
	n := len(series)

	// 尾部趋势：最近window期均值
	trendEnd := 0.0
	for i := n - window; i < n; i++ {
		trendEnd += series[i]
	}
	trendEnd /= float64(window)

	// 季节项：各相位上对当期趋势的平均偏差
	seasonal := make([]float64, window)
	counts := make([]int, window)
	for i := window - 1; i < n; i++ {
		trend := 0.0
		for j := i - window + 1; j <= i; j++ {
			trend += series[j]
		}
		trend /= float64(window)

		phase := i % window
		seasonal[phase] += series[i] - trend
		counts[phase]++
	}
	for p := range seasonal {
		if counts[p] > 0 {
			seasonal[p] /= float64(counts[p])
		}
	}

	next := trendEnd + seasonal[n%window]
	if next < 0 {
		return 0
	}
	return next
}
