package lottery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Game 彩票玩法参数化配置
type Game struct {
	Name       string `json:"name" yaml:"name"`
	MainMax    int    `json:"main_max" yaml:"main_max"`       // 主号码域上限（从1开始）
	MainCount  int    `json:"main_count" yaml:"main_count"`   // 每期主号码个数
	BonusMax   int    `json:"bonus_max" yaml:"bonus_max"`     // 特别号码域上限
	BonusCount int    `json:"bonus_count" yaml:"bonus_count"` // 每期特别号码个数
}

// 预定义玩法
var (
	Euromillions = Game{Name: "euromillions", MainMax: 50, MainCount: 5, BonusMax: 12, BonusCount: 2}
	FrenchLoto   = Game{Name: "french_loto", MainMax: 49, MainCount: 5, BonusMax: 10, BonusCount: 1}
)

// GameByName 根据名称获取预定义玩法
func GameByName(name string) (Game, error) {
	switch name {
	case Euromillions.Name:
		return Euromillions, nil
	case FrenchLoto.Name:
		return FrenchLoto, nil
	default:
		return Game{}, fmt.Errorf("%w: unknown game %q", ErrInvalidParameter, name)
	}
}

// Validate 校验玩法参数
func (g Game) Validate() error {
	if g.MainMax < 1 || g.MainCount < 1 || g.MainCount > g.MainMax {
		return fmt.Errorf("%w: main domain %d/%d", ErrInvalidParameter, g.MainCount, g.MainMax)
	}
	if g.BonusMax < 1 || g.BonusCount < 1 || g.BonusCount > g.BonusMax {
		return fmt.Errorf("%w: bonus domain %d/%d", ErrInvalidParameter, g.BonusCount, g.BonusMax)
	}
	return nil
}

// DrawRecord 历史开奖记录（不可变）
type DrawRecord struct {
	Date    time.Time `json:"date"`
	Numbers []int     `json:"numbers"`
	Bonus   []int     `json:"bonus"`
}

// NewDrawRecord 创建并校验一条开奖记录，号码按升序存储
func NewDrawRecord(game Game, date time.Time, numbers, bonus []int) (DrawRecord, error) {
	if err := checkSet(game, numbers, game.MainCount, game.MainMax, "main"); err != nil {
		return DrawRecord{}, err
	}
	if err := checkSet(game, bonus, game.BonusCount, game.BonusMax, "bonus"); err != nil {
		return DrawRecord{}, err
	}

	record := DrawRecord{
		Date:    date,
		Numbers: sortedCopy(numbers),
		Bonus:   sortedCopy(bonus),
	}
	return record, nil
}

// Combination 生成的候选组合，即对外输出的标准记录
type Combination struct {
	Numbers  []int   `json:"numbers"`
	Bonus    []int   `json:"bonus"`
	Score    float64 `json:"score"`
	Strategy string  `json:"strategy"`
}

// NewCombination 创建并校验候选组合，号码升序、分数截断到[0,100]
func NewCombination(game Game, numbers, bonus []int, score float64, strategy string) (Combination, error) {
	if err := checkSet(game, numbers, game.MainCount, game.MainMax, "main"); err != nil {
		return Combination{}, err
	}
	if err := checkSet(game, bonus, game.BonusCount, game.BonusMax, "bonus"); err != nil {
		return Combination{}, err
	}

	combo := Combination{
		Numbers:  sortedCopy(numbers),
		Bonus:    sortedCopy(bonus),
		Score:    ClampScore(score),
		Strategy: strategy,
	}
	return combo, nil
}

// String 格式化输出组合
func (c Combination) String() string {
	return fmt.Sprintf("numbers: %s | bonus: %s | score: %.2f | strategy: %s",
		FormatNumbers(c.Numbers), FormatNumbers(c.Bonus), c.Score, c.Strategy)
}

// ClampScore 将分数截断到[0,100]
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// checkSet 校验号码集合：个数、值域、唯一性
func checkSet(game Game, values []int, wantCount, max int, kind string) error {
	if len(values) != wantCount {
		return fmt.Errorf("%w: need %d %s numbers, got %d", ErrDomainViolation, wantCount, kind, len(values))
	}
	seen := make(map[int]bool, len(values))
	for _, v := range values {
		if v < 1 || v > max {
			return fmt.Errorf("%w: %s number %d out of range 1-%d", ErrDomainViolation, kind, v, max)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate %s number %d", ErrDomainViolation, kind, v)
		}
		seen[v] = true
	}
	return nil
}

func sortedCopy(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}

// ParseNumbers 解析逗号分隔的号码串，如 "7,13,25,38,44"
func ParseNumbers(s string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	numbers := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid number format: %q", part)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// FormatNumbers 格式化号码为逗号分隔字符串
func FormatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// Sum 计算号码和值
func Sum(numbers []int) int {
	total := 0
	for _, n := range numbers {
		total += n
	}
	return total
}

// CountEven 统计偶数个数
func CountEven(numbers []int) int {
	count := 0
	for _, n := range numbers {
		if n%2 == 0 {
			count++
		}
	}
	return count
}
