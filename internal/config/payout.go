package config

type BetShape string

const (
	Single BetShape = "single"
	Duo    BetShape = "duo"
	Street BetShape = "street"
	Column BetShape = "column"
	Corner BetShape = "corner"
	Half   BetShape = "half"
	Colors BetShape = "color"
	Parity BetShape = "parity"
)

type PayoutGroup struct {
	Shape      BetShape
	Multiplier int
	MinStake   int
	MaxStake   int
	Chips      [][]int
}

type PayoutSchedule struct {
	Version string
	Groups  []PayoutGroup
}

const (
	defaultMinStake = 20 * 100
	defaultMaxStake = 25000 * 100
)

// DefaultPayoutSchedule is one snapshot of the payout configuration.
// Multipliers and stake bounds are data, not logic: swapping the schedule
// must never require touching the validator or the calculator.
var DefaultPayoutSchedule = PayoutSchedule{
	Version: "2025-06",
	Groups: []PayoutGroup{
		{
			Shape:      Single,
			Multiplier: 12,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}, {11}, {12},
			},
		},
		{
			// Splits on the 4x3 grid: horizontal and vertical neighbours.
			//  1  2  3
			//  4  5  6
			//  7  8  9
			// 10 11 12
			Shape:      Duo,
			Multiplier: 6,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{1, 2}, {2, 3}, {4, 5}, {5, 6}, {7, 8}, {8, 9}, {10, 11}, {11, 12},
				{1, 4}, {2, 5}, {3, 6}, {4, 7}, {5, 8}, {6, 9}, {7, 10}, {8, 11}, {9, 12},
			},
		},
		{
			Shape:      Street,
			Multiplier: 4,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12},
			},
		},
		{
			Shape:      Column,
			Multiplier: 4,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{1, 4, 7, 10}, {2, 5, 8, 11}, {3, 6, 9, 12},
			},
		},
		{
			Shape:      Corner,
			Multiplier: 3,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{1, 2, 4, 5}, {2, 3, 5, 6}, {4, 5, 7, 8}, {5, 6, 8, 9},
				{7, 8, 10, 11}, {8, 9, 11, 12},
			},
		},
		{
			Shape:      Half,
			Multiplier: 2,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{1, 2, 3, 4, 5, 6}, {7, 8, 9, 10, 11, 12},
			},
		},
		{
			Shape:      Colors,
			Multiplier: 2,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{1, 3, 5, 8, 10, 12}, {2, 4, 6, 7, 9, 11},
			},
		},
		{
			Shape:      Parity,
			Multiplier: 2,
			MinStake:   defaultMinStake,
			MaxStake:   defaultMaxStake,
			Chips: [][]int{
				{1, 3, 5, 7, 9, 11}, {2, 4, 6, 8, 10, 12},
			},
		},
	},
}
