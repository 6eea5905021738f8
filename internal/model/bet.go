package model

// RawBet is one leg exactly as delivered by the transport. Nothing in it is
// trusted until the validator has normalized it.
type RawBet struct {
	Chip   string  `json:"chip" validate:"required"`
	Amount float64 `json:"btAmt" validate:"required,gt=0"`
}

// BetLeg is a validated, normalized leg. Key is the canonical chip string
// (ascending positions joined with "-") and Stake is in paise.
type BetLeg struct {
	Key       string
	Positions []int
	Stake     int
}

// Covers reports whether the leg wins for the given pocket.
func (l BetLeg) Covers(position int) bool {
	for _, p := range l.Positions {
		if p == position {
			return true
		}
	}

	return false
}

type ValidationResult struct {
	InvalidCount int
	TotalStake   int
	Legs         []BetLeg
}
