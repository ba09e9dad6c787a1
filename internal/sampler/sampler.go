package sampler

import (
	"fmt"
	"math/rand"
	"sort"

	"lottery-engine/internal/lottery"
)

// Sample 加权不放回抽样：每一步按剩余权重占比选取一个值并从池中移除。
// 权重全为零时退化为均匀抽样；负权重视为非法参数。
// 固定rng时结果可复现。
func Sample(rng *rand.Rand, weights map[int]float64, k int) ([]int, error) {
	if k < 1 || k > len(weights) {
		return nil, fmt.Errorf("%w: sample size %d for pool of %d", lottery.ErrInvalidParameter, k, len(weights))
	}

	// 值排序保证遍历次序稳定
	values := make([]int, 0, len(weights))
	for v, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %v for value %d", lottery.ErrInvalidParameter, w, v)
		}
		values = append(values, v)
	}
	sort.Ints(values)

	pool := make([]float64, len(values))
	total := 0.0
	for i, v := range values {
		pool[i] = weights[v]
		total += pool[i]
	}

	selected := make([]int, 0, k)
	for len(selected) < k {
		if total <= 0 {
			// 权重耗尽，剩余名额均匀补齐
			idx := rng.Intn(len(values))
			selected = append(selected, values[idx])
			values = append(values[:idx], values[idx+1:]...)
			pool = append(pool[:idx], pool[idx+1:]...)
			continue
		}

		target := rng.Float64() * total
		idx := len(values) - 1
		acc := 0.0
		for i, w := range pool {
			acc += w
			if target < acc {
				idx = i
				break
			}
		}

		selected = append(selected, values[idx])
		total -= pool[idx]
		values = append(values[:idx], values[idx+1:]...)
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return selected, nil
}

// Pick 加权抽取单个值
func Pick(rng *rand.Rand, weights map[int]float64) (int, error) {
	picked, err := Sample(rng, weights, 1)
	if err != nil {
		return 0, err
	}
	return picked[0], nil
}

// UniformSample 从[1,max]均匀不放回抽取k个值
func UniformSample(rng *rand.Rand, max, k int) ([]int, error) {
	if k < 1 || k > max {
		return nil, fmt.Errorf("%w: sample size %d for domain 1-%d", lottery.ErrInvalidParameter, k, max)
	}
	perm := rng.Perm(max)
	selected := make([]int, k)
	for i := 0; i < k; i++ {
		selected[i] = perm[i] + 1
	}
	return selected, nil
}
