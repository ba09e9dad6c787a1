package lottery

import (
	"fmt"

	"lottery-engine/internal/logger"
)

// ValidateCombination 校验单个组合是否满足数据模型约束
func ValidateCombination(game Game, combo Combination) error {
	if err := checkSet(game, combo.Numbers, game.MainCount, game.MainMax, "main"); err != nil {
		return err
	}
	if err := checkSet(game, combo.Bonus, game.BonusCount, game.BonusMax, "bonus"); err != nil {
		return err
	}
	for i := 1; i < len(combo.Numbers); i++ {
		if combo.Numbers[i-1] >= combo.Numbers[i] {
			return fmt.Errorf("%w: main numbers not ascending: %v", ErrDomainViolation, combo.Numbers)
		}
	}
	for i := 1; i < len(combo.Bonus); i++ {
		if combo.Bonus[i-1] >= combo.Bonus[i] {
			return fmt.Errorf("%w: bonus numbers not ascending: %v", ErrDomainViolation, combo.Bonus)
		}
	}
	if combo.Score < 0 || combo.Score > 100 {
		return fmt.Errorf("%w: score %.2f out of range 0-100", ErrDomainViolation, combo.Score)
	}
	if combo.Strategy == "" {
		return fmt.Errorf("%w: missing strategy label", ErrDomainViolation)
	}
	return nil
}

// ValidateBatch 批量校验组合，任何一个违反约束即失败
func ValidateBatch(game Game, combos []Combination) error {
	for i, combo := range combos {
		if err := ValidateCombination(game, combo); err != nil {
			return fmt.Errorf("combination %d (%s): %w", i, combo.Strategy, err)
		}
	}

	logger.Debugf("Batch validation completed: %d combinations checked", len(combos))
	return nil
}

// ValidateHistory 校验历史快照：非空且每条记录满足约束
func ValidateHistory(game Game, history []DrawRecord) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: empty draw history", ErrInsufficientData)
	}

	for i, record := range history {
		if err := checkSet(game, record.Numbers, game.MainCount, game.MainMax, "main"); err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
		if err := checkSet(game, record.Bonus, game.BonusCount, game.BonusMax, "bonus"); err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
	}
	return nil
}
