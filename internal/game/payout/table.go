package payout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
)

// Term is one priced bet-shape: the payout terms for a single canonical chip.
type Term struct {
	Key        string
	Shape      config.BetShape
	Multiplier int
	MinStake   int
	MaxStake   int
	Positions  []int
}

// Table is the immutable chip -> term lookup built once at startup from a
// payout schedule. It is safe to share across rounds without locking.
type Table struct {
	version string
	terms   map[string]Term
}

func NewTable(schedule config.PayoutSchedule) *Table {
	terms := make(map[string]Term)

	for _, group := range schedule.Groups {
		for _, positions := range group.Chips {
			key := KeyOf(positions)

			terms[key] = Term{
				Key:        key,
				Shape:      group.Shape,
				Multiplier: group.Multiplier,
				MinStake:   group.MinStake,
				MaxStake:   group.MaxStake,
				Positions:  sortedCopy(positions),
			}
		}
	}

	return &Table{
		version: schedule.Version,
		terms:   terms,
	}
}

func (t *Table) Lookup(key string) (Term, bool) {
	term, ok := t.terms[key]

	return term, ok
}

func (t *Table) Version() string {
	return t.version
}

func (t *Table) Size() int {
	return len(t.terms)
}

// DescribeChip is a presentation helper for reporting: it labels a stored
// chip by its bet-shape. It carries no engine invariants.
func (t *Table) DescribeChip(key string) string {
	term, ok := t.terms[key]
	if !ok {
		return "unknown"
	}

	return string(term.Shape)
}

// KeyOf builds the canonical chip string for a position set: ascending
// order, "-" separated. Two sets with the same members always produce the
// same key.
func KeyOf(positions []int) string {
	sorted := sortedCopy(positions)

	tokens := make([]string, 0, len(sorted))
	for _, p := range sorted {
		tokens = append(tokens, strconv.Itoa(p))
	}

	return strings.Join(tokens, "-")
}

// ParseChip parses a raw chip string into its position set. Tokens that do
// not parse or fall outside the wheel are rejected; duplicates collapse.
func ParseChip(chip string) ([]int, error) {
	tokens := strings.Split(chip, "-")

	seen := make(map[int]bool, len(tokens))
	positions := make([]int, 0, len(tokens))

	for _, token := range tokens {
		p, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, fmt.Errorf("chip token %q is not a number", token)
		}

		if p < config.MinPosition || p > config.MaxPosition {
			return nil, fmt.Errorf("chip position %d is outside the wheel", p)
		}

		if seen[p] {
			continue
		}

		seen[p] = true
		positions = append(positions, p)
	}

	sort.Ints(positions)

	return positions, nil
}

func sortedCopy(positions []int) []int {
	out := make([]int, len(positions))
	copy(out, positions)
	sort.Ints(out)

	return out
}
