package settle

import (
	"testing"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
	"github.com/cloudstok/flash-roulette-backend/internal/game/payout"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

func leg(key string, stakeRupees int, t *testing.T) model.BetLeg {
	t.Helper()

	positions, err := payout.ParseChip(key)
	if err != nil {
		t.Fatalf("bad test chip %q: %v", key, err)
	}

	return model.BetLeg{
		Key:       payout.KeyOf(positions),
		Positions: positions,
		Stake:     stakeRupees * 100,
	}
}

func TestSettle(t *testing.T) {
	table := payout.NewTable(config.DefaultPayoutSchedule)

	cases := []struct {
		name        string
		legs        []model.BetLeg
		position    int
		wantPayouts []int
		wantTotal   int
	}{
		{
			name:        "SingleHit",
			legs:        []model.BetLeg{leg("5", 20, t)},
			position:    5,
			wantPayouts: []int{240 * 100},
			wantTotal:   240 * 100,
		},
		{
			name:        "DuoMiss",
			legs:        []model.BetLeg{leg("1-2", 25000, t)},
			position:    9,
			wantPayouts: []int{0},
			wantTotal:   0,
		},
		{
			name: "WhitePocketMixedBatch",
			legs: []model.BetLeg{
				leg("0", 20, t),
				leg("1-4", 30, t),
			},
			position:    0,
			wantPayouts: []int{240 * 100, 0},
			wantTotal:   240 * 100,
		},
		{
			name:        "DuoHitPaysSixTimes",
			legs:        []model.BetLeg{leg("1-4", 30, t)},
			position:    4,
			wantPayouts: []int{180 * 100},
			wantTotal:   180 * 100,
		},
		{
			name: "ColorHit",
			legs: []model.BetLeg{
				leg("1-3-5-8-10-12", 100, t),
			},
			position:    8,
			wantPayouts: []int{200 * 100},
			wantTotal:   200 * 100,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			outcome := model.RoundOutcome{
				Position: tc.position,
				Color:    config.ColorOf(tc.position),
			}

			total, results := Settle(tc.legs, outcome, table)

			if total != tc.wantTotal {
				t.Errorf("unexpected total payout, want: %d, got: %d", tc.wantTotal, total)
			}
			if len(results) != len(tc.legs) {
				t.Fatalf("expected a result for every leg, want: %d, got: %d", len(tc.legs), len(results))
			}

			sum := 0
			for i, r := range results {
				if r.Payout != tc.wantPayouts[i] {
					t.Errorf("leg %d: unexpected payout, want: %d, got: %d", i, tc.wantPayouts[i], r.Payout)
				}

				wantStatus := model.StatusLoss
				if tc.wantPayouts[i] > 0 {
					wantStatus = model.StatusWin
				}
				if r.Status != wantStatus {
					t.Errorf("leg %d: unexpected status, want: %s, got: %s", i, wantStatus, r.Status)
				}
				if r.Stake != tc.legs[i].Stake {
					t.Errorf("leg %d: stake changed during settlement", i)
				}

				sum += r.Payout
			}

			if sum != total {
				t.Errorf("per-leg payouts sum to %d, total says %d", sum, total)
			}
		})
	}
}

func TestSettleKeepsLossLegs(t *testing.T) {
	table := payout.NewTable(config.DefaultPayoutSchedule)

	legs := []model.BetLeg{
		leg("1", 20, t),
		leg("2", 20, t),
		leg("3", 20, t),
	}

	total, results := Settle(legs, model.RoundOutcome{Position: 12, Color: config.Red}, table)

	if total != 0 {
		t.Fatalf("expected a losing round, got total %d", total)
	}
	if len(results) != 3 {
		t.Fatalf("loss legs must not be dropped, want: 3, got: %d", len(results))
	}
	for i, r := range results {
		if r.Status != model.StatusLoss || r.Payout != 0 {
			t.Errorf("leg %d: want loss with zero payout, got %s/%d", i, r.Status, r.Payout)
		}
	}
}
