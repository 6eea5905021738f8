package payout

import (
	"testing"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
)

func TestKeyOfIsOrderIndependent(t *testing.T) {
	cases := []struct {
		name      string
		positions []int
		want      string
	}{
		{
			name:      "Single",
			positions: []int{5},
			want:      "5",
		},
		{
			name:      "SortedInput",
			positions: []int{1, 4},
			want:      "1-4",
		},
		{
			name:      "UnsortedInput",
			positions: []int{4, 1},
			want:      "1-4",
		},
		{
			name:      "Street",
			positions: []int{3, 1, 2},
			want:      "1-2-3",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := KeyOf(tc.positions)
			if got != tc.want {
				t.Errorf("unexpected key, want: %s, got: %s", tc.want, got)
			}
		})
	}
}

func TestParseChip(t *testing.T) {
	cases := []struct {
		name    string
		chip    string
		want    string
		wantErr bool
	}{
		{
			name: "Single",
			chip: "7",
			want: "7",
		},
		{
			name: "UnorderedPair",
			chip: "4-1",
			want: "1-4",
		},
		{
			name: "DuplicateCollapses",
			chip: "2-2-5",
			want: "2-5",
		},
		{
			name:    "NonNumeric",
			chip:    "a-1",
			wantErr: true,
		},
		{
			name:    "OutOfRange",
			chip:    "13",
			wantErr: true,
		},
		{
			name:    "Negative",
			chip:    "-1",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			positions, err := ParseChip(tc.chip)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for chip %q", tc.chip)
				}

				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := KeyOf(positions); got != tc.want {
				t.Errorf("unexpected key, want: %s, got: %s", tc.want, got)
			}
		})
	}
}

func TestTableLookup(t *testing.T) {
	table := NewTable(config.DefaultPayoutSchedule)

	cases := []struct {
		name           string
		key            string
		wantMultiplier int
		wantShape      config.BetShape
		wantAbsent     bool
	}{
		{
			name:           "SingleZero",
			key:            "0",
			wantMultiplier: 12,
			wantShape:      config.Single,
		},
		{
			name:           "SingleFive",
			key:            "5",
			wantMultiplier: 12,
			wantShape:      config.Single,
		},
		{
			name:           "Duo",
			key:            "1-2",
			wantMultiplier: 6,
			wantShape:      config.Duo,
		},
		{
			name:           "Street",
			key:            "4-5-6",
			wantMultiplier: 4,
			wantShape:      config.Street,
		},
		{
			name:           "Column",
			key:            "1-4-7-10",
			wantMultiplier: 4,
			wantShape:      config.Column,
		},
		{
			name:           "Corner",
			key:            "1-2-4-5",
			wantMultiplier: 3,
			wantShape:      config.Corner,
		},
		{
			name:           "Half",
			key:            "7-8-9-10-11-12",
			wantMultiplier: 2,
			wantShape:      config.Half,
		},
		{
			name:           "Reds",
			key:            "1-3-5-8-10-12",
			wantMultiplier: 2,
			wantShape:      config.Colors,
		},
		{
			name:       "UnknownPair",
			key:        "2-9",
			wantAbsent: true,
		},
		{
			name:       "Empty",
			key:        "",
			wantAbsent: true,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			term, ok := table.Lookup(tc.key)
			if tc.wantAbsent {
				if ok {
					t.Fatalf("expected key %q to be absent", tc.key)
				}

				return
			}

			if !ok {
				t.Fatalf("expected key %q to be present", tc.key)
			}
			if term.Multiplier != tc.wantMultiplier {
				t.Errorf("unexpected multiplier, want: %d, got: %d", tc.wantMultiplier, term.Multiplier)
			}
			if term.Shape != tc.wantShape {
				t.Errorf("unexpected shape, want: %s, got: %s", tc.wantShape, term.Shape)
			}
		})
	}
}

func TestDescribeChip(t *testing.T) {
	table := NewTable(config.DefaultPayoutSchedule)

	if got := table.DescribeChip("1-2-4-5"); got != "corner" {
		t.Errorf("unexpected label, want: corner, got: %s", got)
	}
	if got := table.DescribeChip("2-9"); got != "unknown" {
		t.Errorf("unexpected label, want: unknown, got: %s", got)
	}
}
