package model

// PlayerSession mirrors the cache entry the platform writes when a player
// connects. Balance is in paise and is only a local mirror of the ledger:
// the ledger stays the source of truth.
type PlayerSession struct {
	UserID     string `json:"userId"`
	OperatorID string `json:"operatorId"`
	Token      string `json:"token"`
	GameID     string `json:"game_id"`
	Balance    int    `json:"balance"`
}
