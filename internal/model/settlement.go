package model

import (
	"time"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
)

type BetStatus string

const (
	StatusWin  BetStatus = "win"
	StatusLoss BetStatus = "loss"
)

// LegResult is the settled outcome of one leg. Amounts are in paise.
type LegResult struct {
	Chip       string
	Stake      int
	Payout     int
	Multiplier int
	Status     BetStatus
}

// Settlement is the immutable audit record of one round, written exactly
// once after both money movements were attempted.
type Settlement struct {
	RoundID     string
	UserID      string
	OperatorID  string
	TotalStake  int
	TotalPayout int
	Legs        []LegResult
	Position    int
	Color       config.Color
	CreatedAt   time.Time
}
