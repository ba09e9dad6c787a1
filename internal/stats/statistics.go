package stats

import (
	"fmt"
	"sort"

	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
)

// Statistics 开奖历史的分布统计，会话开始时构建一次，之后只读。
// 历史快照按最近优先排序：history[0] 是最新一期。
type Statistics struct {
	game    lottery.Game
	history []lottery.DrawRecord

	mainFreq  map[int]int
	bonusFreq map[int]int
}

// New 从历史快照构建统计对象，空历史返回InsufficientData
func New(game lottery.Game, history []lottery.DrawRecord) (*Statistics, error) {
	if err := game.Validate(); err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: empty draw history", lottery.ErrInsufficientData)
	}

	s := &Statistics{
		game:    game,
		history: make([]lottery.DrawRecord, len(history)),
	}
	copy(s.history, history)

	s.mainFreq = countFrequency(s.history, game.MainMax, mainNumbers)
	s.bonusFreq = countFrequency(s.history, game.BonusMax, bonusNumbers)

	logger.Debugf("Statistics built: %d draws, game=%s", len(history), game.Name)
	return s, nil
}

// Game 返回玩法参数
func (s *Statistics) Game() lottery.Game {
	return s.game
}

// Draws 返回历史期数
func (s *Statistics) Draws() int {
	return len(s.history)
}

// History 返回历史快照副本
func (s *Statistics) History() []lottery.DrawRecord {
	out := make([]lottery.DrawRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Latest 返回最新一期记录
func (s *Statistics) Latest() lottery.DrawRecord {
	return s.history[0]
}

func mainNumbers(r lottery.DrawRecord) []int  { return r.Numbers }
func bonusNumbers(r lottery.DrawRecord) []int { return r.Bonus }

// countFrequency 统计出现次数，整个值域零填充
func countFrequency(history []lottery.DrawRecord, max int, pick func(lottery.DrawRecord) []int) map[int]int {
	freq := make(map[int]int, max)
	for v := 1; v <= max; v++ {
		freq[v] = 0
	}
	for _, record := range history {
		for _, n := range pick(record) {
			freq[n]++
		}
	}
	return freq
}

// Frequency 主号码频率表（副本）
func (s *Statistics) Frequency() map[int]int {
	return copyIntMap(s.mainFreq)
}

// BonusFrequency 特别号码频率表（副本）
func (s *Statistics) BonusFrequency() map[int]int {
	return copyIntMap(s.bonusFreq)
}

// RecentFrequency 最近draws期的主号码频率表
func (s *Statistics) RecentFrequency(draws int) map[int]int {
	if draws > len(s.history) {
		draws = len(s.history)
	}
	return countFrequency(s.history[:draws], s.game.MainMax, mainNumbers)
}

// WeightedFrequency 主号码加权频率：全量频率与最近20%窗口频率按blend混合。
// 混合前先把窗口频率等比放大到与全量同等总质量。
func (s *Statistics) WeightedFrequency(blend float64) (map[int]float64, error) {
	return s.weightedFrequency(blend, s.mainFreq, s.game.MainMax, mainNumbers)
}

// WeightedBonusFrequency 特别号码加权频率
func (s *Statistics) WeightedBonusFrequency(blend float64) (map[int]float64, error) {
	return s.weightedFrequency(blend, s.bonusFreq, s.game.BonusMax, bonusNumbers)
}

func (s *Statistics) weightedFrequency(blend float64, full map[int]int, max int, pick func(lottery.DrawRecord) []int) (map[int]float64, error) {
	if blend < 0 || blend > 1 {
		return nil, fmt.Errorf("%w: blend must be in [0,1], got %v", lottery.ErrInvalidParameter, blend)
	}

	weighted := make(map[int]float64, max)
	for v, count := range full {
		weighted[v] = float64(count)
	}
	if blend == 0 {
		return weighted, nil
	}

	// 最近20%窗口，至少一期
	recentCount := len(s.history) / 5
	if recentCount < 1 {
		recentCount = 1
	}
	recent := countFrequency(s.history[:recentCount], max, pick)

	fullTotal := 0
	for _, count := range full {
		fullTotal += count
	}
	recentTotal := 0
	for _, count := range recent {
		recentTotal += count
	}

	scale := 1.0
	if recentTotal > 0 {
		scale = float64(fullTotal) / float64(recentTotal)
	}

	for v := range weighted {
		scaledRecent := float64(recent[v]) * scale
		weighted[v] = (1-blend)*float64(full[v]) + blend*scaledRecent
	}
	return weighted, nil
}

// Hot 按频率取前n个主号码，频率相同时小号优先
func (s *Statistics) Hot(n int) []int {
	return rankByFrequency(s.mainFreq, n, true)
}

// Cold 按频率取后n个主号码
func (s *Statistics) Cold(n int) []int {
	return rankByFrequency(s.mainFreq, n, false)
}

// HotBonus 按频率取前n个特别号码
func (s *Statistics) HotBonus(n int) []int {
	return rankByFrequency(s.bonusFreq, n, true)
}

// ColdBonus 按频率取后n个特别号码
func (s *Statistics) ColdBonus(n int) []int {
	return rankByFrequency(s.bonusFreq, n, false)
}

func rankByFrequency(freq map[int]int, n int, descending bool) []int {
	values := make([]int, 0, len(freq))
	for v := range freq {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		a, b := values[i], values[j]
		if freq[a] != freq[b] {
			if descending {
				return freq[a] > freq[b]
			}
			return freq[a] < freq[b]
		}
		return a < b
	})
	if n > len(values) {
		n = len(values)
	}
	return values[:n]
}

func copyIntMap(src map[int]int) map[int]int {
	out := make(map[int]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
