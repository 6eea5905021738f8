package settle

import (
	"github.com/cloudstok/flash-roulette-backend/internal/game/payout"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

// Settle matches every normalized leg against the drawn outcome. A leg wins
// iff the pocket is in its position set; then payout = stake * multiplier.
// Losing legs are kept in the result with a zero payout so the audit record
// and the player-facing breakdown stay complete.
func Settle(legs []model.BetLeg, outcome model.RoundOutcome, table *payout.Table) (int, []model.LegResult) {
	var totalPayout int

	results := make([]model.LegResult, 0, len(legs))

	for _, leg := range legs {
		term, _ := table.Lookup(leg.Key)

		result := model.LegResult{
			Chip:       leg.Key,
			Stake:      leg.Stake,
			Multiplier: term.Multiplier,
			Status:     model.StatusLoss,
		}

		if leg.Covers(outcome.Position) {
			result.Payout = leg.Stake * term.Multiplier
			result.Status = model.StatusWin
		}

		totalPayout += result.Payout
		results = append(results, result)
	}

	return totalPayout, results
}
