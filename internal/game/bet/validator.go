package bet

import (
	"github.com/cloudstok/flash-roulette-backend/internal/game/payout"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/converter"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

const (
	MinLegsPerBatch = 1
	MaxLegsPerBatch = 6
)

// Validator normalizes a raw bet batch against the payout table. A batch is
// atomic: any failing leg marks the whole batch invalid and the caller must
// reject it before any money moves.
type Validator struct {
	table *payout.Table
}

func NewValidator(table *payout.Table) *Validator {
	return &Validator{table: table}
}

func (v *Validator) Validate(raw []model.RawBet) model.ValidationResult {
	var result model.ValidationResult

	if len(raw) < MinLegsPerBatch || len(raw) > MaxLegsPerBatch {
		result.InvalidCount = 1

		return result
	}

	for _, rb := range raw {
		positions, err := payout.ParseChip(rb.Chip)
		if err != nil {
			result.InvalidCount++

			continue
		}

		key := payout.KeyOf(positions)

		term, ok := v.table.Lookup(key)
		if !ok {
			result.InvalidCount++

			continue
		}

		if rb.Amount <= 0 {
			result.InvalidCount++

			continue
		}

		stake := converter.ConvertAmountFloatToInt(rb.Amount)

		if stake < term.MinStake || stake > term.MaxStake {
			result.InvalidCount++

			continue
		}

		result.Legs = append(result.Legs, model.BetLeg{
			Key:       key,
			Positions: positions,
			Stake:     stake,
		})
		result.TotalStake += stake
	}

	return result
}
