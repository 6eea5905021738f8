package model

import "github.com/cloudstok/flash-roulette-backend/internal/config"

// RoundOutcome is one draw of the wheel. Color is always derived from
// Position, never stored independently.
type RoundOutcome struct {
	Position int
	Color    config.Color
}
