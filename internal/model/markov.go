package model

import (
	"fmt"
	"math/rand"
	"sort"

	"lottery-engine/internal/config"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/sampler"
	"lottery-engine/internal/stats"
)

// 三类转移的混合权重
const (
	directWeight = 0.5
	lagWeight    = 0.3
	pairWeight   = 0.2
)

// TransitionModel 马尔可夫转移表，构建一次后只读
type TransitionModel struct {
	direct map[int]map[int]float64    // 同期排序后相邻号码
	lag    map[int]map[int]float64    // 相隔lag期的号码
	pair   map[string]map[int]float64 // 同期号码对到更大的第三号
}

// Markov 马尔可夫生成器：从最新一期出发按转移表做链式游走
type Markov struct {
	generator
	transitions *TransitionModel
}

// NewMarkov 创建马尔可夫生成器，构造时建好转移表
func NewMarkov(game lottery.Game, st *stats.Statistics, params config.Params, rng *rand.Rand) *Markov {
	m := &Markov{generator: generator{game: game, stats: st, params: params, rng: rng}}
	m.transitions = buildTransitions(st.History(), params.Lag)
	return m
}

// Name 获取策略名称
func (m *Markov) Name() string {
	return "markov"
}

// MinHistory 获取所需的最小历史期数
func (m *Markov) MinHistory() int {
	return m.params.Lag + 2
}

// buildTransitions 从历史构建三张转移表，history按最近优先
func buildTransitions(history []lottery.DrawRecord, lag int) *TransitionModel {
	t := &TransitionModel{
		direct: make(map[int]map[int]float64),
		lag:    make(map[int]map[int]float64),
		pair:   make(map[string]map[int]float64),
	}

	for _, record := range history {
		numbers := record.Numbers
		for i := 1; i < len(numbers); i++ {
			addTransition(t.direct, numbers[i-1], numbers[i])
		}
		for i := 0; i < len(numbers); i++ {
			for j := i + 1; j < len(numbers); j++ {
				key := pairKey(numbers[i], numbers[j])
				for k := j + 1; k < len(numbers); k++ {
					if t.pair[key] == nil {
						t.pair[key] = make(map[int]float64)
					}
					t.pair[key][numbers[k]]++
				}
			}
		}
	}

	// history[i+lag]是history[i]之前lag期的记录
	for i := 0; i+lag < len(history); i++ {
		for _, from := range history[i+lag].Numbers {
			for _, to := range history[i].Numbers {
				addTransition(t.lag, from, to)
			}
		}
	}
	return t
}

func addTransition(table map[int]map[int]float64, from, to int) {
	if table[from] == nil {
		table[from] = make(map[int]float64)
	}
	table[from][to]++
}

func pairKey(a, b int) string {
	return fmt.Sprintf("%d-%d", a, b)
}

// Generate 生成count个候选组合
func (m *Markov) Generate(count int) ([]lottery.Combination, error) {
	if err := m.checkGenerate(m.Name(), count, m.MinHistory()); err != nil {
		return nil, err
	}

	seed := m.stats.Latest().Numbers

	combos := make([]lottery.Combination, 0, count)
	for i := 0; i < count; i++ {
		numbers, score, err := m.walk(seed)
		if err != nil {
			return nil, err
		}
		bonus, err := m.pickBonus()
		if err != nil {
			return nil, err
		}

		combo, err := lottery.NewCombination(m.game, numbers, bonus, score, m.Name())
		if err != nil {
			return nil, err
		}
		combos = append(combos, combo)
	}

	logger.Debugf("markov model generated %d combinations (lag=%d)", len(combos), m.params.Lag)
	return combos, nil
}

// walk 从最新一期出发逐步选号，每步按已选号码的综合转移权重抽样
func (m *Markov) walk(seed []int) ([]int, float64, error) {
	chosen := make([]int, 0, m.game.MainCount)
	context := append([]int(nil), seed...)

	ratioSum := 0.0
	for len(chosen) < m.game.MainCount {
		weights := m.candidateWeights(context, chosen)

		next, err := sampler.Pick(m.rng, weights)
		if err != nil {
			return nil, 0, err
		}

		max := 0.0
		for _, w := range weights {
			if w > max {
				max = w
			}
		}
		if max > 0 {
			ratioSum += weights[next] / max
		}

		chosen = append(chosen, next)
		context = append(context, next)
	}

	score := ratioSum / float64(m.game.MainCount) * 100
	return chosen, lottery.ClampScore(score), nil
}

// candidateWeights 计算所有未选号码的转移权重，全零时由抽样器退化为均匀
func (m *Markov) candidateWeights(context, chosen []int) map[int]float64 {
	used := make(map[int]bool, len(chosen))
	for _, c := range chosen {
		used[c] = true
	}

	sortedChosen := append([]int(nil), chosen...)
	sort.Ints(sortedChosen)

	weights := make(map[int]float64, m.game.MainMax)
	for v := 1; v <= m.game.MainMax; v++ {
		if used[v] {
			continue
		}

		direct, lagW := 0.0, 0.0
		for _, c := range context {
			if row := m.transitions.direct[c]; row != nil {
				direct += row[v]
			}
			if row := m.transitions.lag[c]; row != nil {
				lagW += row[v]
			}
		}

		pairW := 0.0
		for i := 0; i < len(sortedChosen); i++ {
			for j := i + 1; j < len(sortedChosen); j++ {
				if row := m.transitions.pair[pairKey(sortedChosen[i], sortedChosen[j])]; row != nil {
					pairW += row[v]
				}
			}
		}

		weights[v] = directWeight*direct + lagWeight*lagW + pairWeight*pairW
	}
	return weights
}
