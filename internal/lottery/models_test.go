package lottery

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameByName(t *testing.T) {
	game, err := GameByName("euromillions")
	require.NoError(t, err)
	assert.Equal(t, 50, game.MainMax)
	assert.Equal(t, 5, game.MainCount)
	assert.Equal(t, 12, game.BonusMax)
	assert.Equal(t, 2, game.BonusCount)

	game, err = GameByName("french_loto")
	require.NoError(t, err)
	assert.Equal(t, 49, game.MainMax)
	assert.Equal(t, 1, game.BonusCount)

	_, err = GameByName("powerball")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewDrawRecordSortsNumbers(t *testing.T) {
	record, err := NewDrawRecord(Euromillions, time.Now(), []int{44, 7, 25, 13, 38}, []int{9, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 13, 25, 38, 44}, record.Numbers)
	assert.Equal(t, []int{2, 9}, record.Bonus)
}

func TestNewDrawRecordRejectsBadSets(t *testing.T) {
	now := time.Now()

	_, err := NewDrawRecord(Euromillions, now, []int{7, 13, 25, 38}, []int{2, 9})
	assert.ErrorIs(t, err, ErrDomainViolation)

	_, err = NewDrawRecord(Euromillions, now, []int{7, 13, 25, 38, 51}, []int{2, 9})
	assert.ErrorIs(t, err, ErrDomainViolation)

	_, err = NewDrawRecord(Euromillions, now, []int{7, 7, 25, 38, 44}, []int{2, 9})
	assert.ErrorIs(t, err, ErrDomainViolation)

	_, err = NewDrawRecord(Euromillions, now, []int{7, 13, 25, 38, 44}, []int{2, 13})
	assert.ErrorIs(t, err, ErrDomainViolation)
}

func TestNewCombinationClampsScore(t *testing.T) {
	combo, err := NewCombination(Euromillions, []int{44, 7, 25, 13, 38}, []int{9, 2}, 120, "frequency")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 13, 25, 38, 44}, combo.Numbers)
	assert.Equal(t, 100.0, combo.Score)

	combo, err = NewCombination(Euromillions, []int{1, 2, 3, 4, 5}, []int{1, 2}, -3, "frequency")
	require.NoError(t, err)
	assert.Equal(t, 0.0, combo.Score)
}

func TestValidateCombination(t *testing.T) {
	valid := Combination{Numbers: []int{7, 13, 25, 38, 44}, Bonus: []int{2, 9}, Score: 50, Strategy: "frequency"}
	assert.NoError(t, ValidateCombination(Euromillions, valid))

	unsorted := valid
	unsorted.Numbers = []int{13, 7, 25, 38, 44}
	assert.ErrorIs(t, ValidateCombination(Euromillions, unsorted), ErrDomainViolation)

	unlabeled := valid
	unlabeled.Strategy = ""
	assert.ErrorIs(t, ValidateCombination(Euromillions, unlabeled), ErrDomainViolation)
}

func TestValidateBatchWrapsIndex(t *testing.T) {
	bad := Combination{Numbers: []int{7, 13, 25, 38, 55}, Bonus: []int{2, 9}, Score: 50, Strategy: "frequency"}
	err := ValidateBatch(Euromillions, []Combination{bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomainViolation))
	assert.Contains(t, err.Error(), "combination 0")
}

func TestValidateHistoryEmpty(t *testing.T) {
	err := ValidateHistory(Euromillions, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestParseFormatNumbers(t *testing.T) {
	numbers, err := ParseNumbers("7, 13,25,38, 44")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 13, 25, 38, 44}, numbers)
	assert.Equal(t, "7,13,25,38,44", FormatNumbers(numbers))

	_, err = ParseNumbers("7,x,25")
	assert.Error(t, err)
}

func TestSumAndCountEven(t *testing.T) {
	numbers := []int{7, 13, 25, 38, 44}
	assert.Equal(t, 127, Sum(numbers))
	assert.Equal(t, 2, CountEven(numbers))
}
