package bet

import (
	"testing"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
	"github.com/cloudstok/flash-roulette-backend/internal/game/payout"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

func newValidator() *Validator {
	return NewValidator(payout.NewTable(config.DefaultPayoutSchedule))
}

func TestValidateBatchSize(t *testing.T) {
	v := newValidator()

	cases := []struct {
		name string
		raw  []model.RawBet
	}{
		{
			name: "Empty",
			raw:  nil,
		},
		{
			name: "Oversized",
			raw: []model.RawBet{
				{Chip: "1", Amount: 20}, {Chip: "2", Amount: 20}, {Chip: "3", Amount: 20},
				{Chip: "4", Amount: 20}, {Chip: "5", Amount: 20}, {Chip: "6", Amount: 20},
				{Chip: "7", Amount: 20},
			},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := v.Validate(tc.raw)
			if result.InvalidCount != 1 {
				t.Errorf("unexpected invalid count, want: 1, got: %d", result.InvalidCount)
			}
			if result.TotalStake != 0 {
				t.Errorf("unexpected total stake, want: 0, got: %d", result.TotalStake)
			}
			if len(result.Legs) != 0 {
				t.Errorf("expected no normalized legs, got: %d", len(result.Legs))
			}
		})
	}
}

func TestValidateLegs(t *testing.T) {
	v := newValidator()

	cases := []struct {
		name        string
		raw         []model.RawBet
		wantInvalid int
		wantStake   int
		wantLegs    int
	}{
		{
			name:      "SingleValidLeg",
			raw:       []model.RawBet{{Chip: "5", Amount: 20}},
			wantStake: 2000,
			wantLegs:  1,
		},
		{
			name:      "UnorderedChipNormalizes",
			raw:       []model.RawBet{{Chip: "4-1", Amount: 30}},
			wantStake: 3000,
			wantLegs:  1,
		},
		{
			name:      "MaxBoundIsInclusive",
			raw:       []model.RawBet{{Chip: "1-2", Amount: 25000}},
			wantStake: 2500000,
			wantLegs:  1,
		},
		{
			name:        "StakeAboveMax",
			raw:         []model.RawBet{{Chip: "7", Amount: 49999}},
			wantInvalid: 1,
		},
		{
			name:        "StakeBelowMin",
			raw:         []model.RawBet{{Chip: "7", Amount: 19.99}},
			wantInvalid: 1,
		},
		{
			name:        "ZeroAmount",
			raw:         []model.RawBet{{Chip: "7", Amount: 0}},
			wantInvalid: 1,
		},
		{
			name:        "NegativeAmount",
			raw:         []model.RawBet{{Chip: "7", Amount: -20}},
			wantInvalid: 1,
		},
		{
			name:        "NonNumericToken",
			raw:         []model.RawBet{{Chip: "x-3", Amount: 20}},
			wantInvalid: 1,
		},
		{
			name:        "OutOfRangePosition",
			raw:         []model.RawBet{{Chip: "13", Amount: 20}},
			wantInvalid: 1,
		},
		{
			name:        "UnknownChip",
			raw:         []model.RawBet{{Chip: "2-9", Amount: 20}},
			wantInvalid: 1,
		},
		{
			name: "MixedBatchCountsOnlyValidStake",
			raw: []model.RawBet{
				{Chip: "0", Amount: 20},
				{Chip: "2-9", Amount: 30},
			},
			wantInvalid: 1,
			wantStake:   2000,
			wantLegs:    1,
		},
		{
			name: "TwoValidLegs",
			raw: []model.RawBet{
				{Chip: "0", Amount: 20},
				{Chip: "1-4", Amount: 30},
			},
			wantStake: 5000,
			wantLegs:  2,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := v.Validate(tc.raw)
			if result.InvalidCount != tc.wantInvalid {
				t.Errorf("unexpected invalid count, want: %d, got: %d", tc.wantInvalid, result.InvalidCount)
			}
			if result.TotalStake != tc.wantStake {
				t.Errorf("unexpected total stake, want: %d, got: %d", tc.wantStake, result.TotalStake)
			}
			if len(result.Legs) != tc.wantLegs {
				t.Errorf("unexpected leg count, want: %d, got: %d", tc.wantLegs, len(result.Legs))
			}
		})
	}
}
