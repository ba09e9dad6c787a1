package fusion

import (
	"fmt"
	"sort"

	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
)

// 缺省复用上限
const (
	DefaultNumberCap   = 2
	DefaultStrategyCap = 3
)

// SelectDiverse 多样性选择：按分数从高到低扫描候选池，
// 只接受不超出号码与策略复用上限的组合，取满n个或扫完为止。
func SelectDiverse(pool []lottery.Combination, n, numberCap, strategyCap int) ([]lottery.Combination, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: selection size must be >= 1, got %d", lottery.ErrInvalidParameter, n)
	}
	if numberCap < 1 {
		numberCap = DefaultNumberCap
	}
	if strategyCap < 1 {
		strategyCap = DefaultStrategyCap
	}

	// 候选池副本按分数降序，同分保持原次序
	sorted := make([]lottery.Combination, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	numberUse := make(map[int]int)
	strategyUse := make(map[string]int)
	selected := make([]lottery.Combination, 0, n)

	for _, combo := range sorted {
		if len(selected) >= n {
			break
		}
		if strategyUse[combo.Strategy] >= strategyCap {
			continue
		}

		fits := true
		for _, num := range combo.Numbers {
			if numberUse[num] >= numberCap {
				fits = false
				break
			}
		}
		if !fits {
			continue
		}

		for _, num := range combo.Numbers {
			numberUse[num]++
		}
		strategyUse[combo.Strategy]++
		selected = append(selected, combo)
	}

	logger.Debugf("diversity selection kept %d of %d candidates (numberCap=%d strategyCap=%d)",
		len(selected), len(pool), numberCap, strategyCap)
	return selected, nil
}
