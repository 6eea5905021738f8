package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/converter"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
	"github.com/cloudstok/flash-roulette-backend/internal/storage/mysql"
)

const SchemaSettlements = `CREATE TABLE IF NOT EXISTS settlements (
   settlement_id int AUTO_INCREMENT PRIMARY KEY,
   round_id varchar(255) NOT NULL UNIQUE,
   user_id varchar(255) NOT NULL,
   operator_id varchar(255) DEFAULT NULL,
   bet_amount decimal(10, 2) NOT NULL DEFAULT 0.00,
   win_amount decimal(10, 2) DEFAULT 0.00,
   user_bets json,
   win_pos smallint,
   win_color varchar(16),
   created_at timestamp NULL DEFAULT CURRENT_TIMESTAMP
 );`

// legRecord is the persisted per-leg breakdown stored in the user_bets JSON
// column. Amounts are rupees, matching the decimal columns.
type legRecord struct {
	Chip      string  `json:"chip"`
	BetAmount float64 `json:"betAmount"`
	WinAmount float64 `json:"winAmount"`
	Mult      int     `json:"mult"`
	Status    string  `json:"status"`
}

type SettlementRepository struct {
	dbhandler mysql.Handler
}

func NewSettlementRepository(dbhandler mysql.Handler) *SettlementRepository {
	return &SettlementRepository{dbhandler: dbhandler}
}

func (repo *SettlementRepository) InitSchema() error {
	const op = "repository.settlement.InitSchema"

	if _, err := repo.dbhandler.PrepareAndExecute(SchemaSettlements); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *SettlementRepository) Insert(settlement model.Settlement) error {
	const op = "repository.settlement.Insert"

	const query = "INSERT INTO settlements(round_id, user_id, operator_id, bet_amount, win_amount, user_bets, win_pos, win_color, created_at) " +
		"VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)"

	userBets, err := json.Marshal(legRecords(settlement.Legs))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	createdAt := settlement.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = repo.dbhandler.PrepareAndExecute(query,
		settlement.RoundID,
		settlement.UserID,
		settlement.OperatorID,
		converter.ConvertAmountIntToFloat(settlement.TotalStake),
		converter.ConvertAmountIntToFloat(settlement.TotalPayout),
		userBets,
		settlement.Position,
		string(settlement.Color),
		createdAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (repo *SettlementRepository) ListByUser(userID, operatorID string, limit int) ([]model.Settlement, error) {
	const op = "repository.settlement.ListByUser"

	if limit <= 0 {
		limit = 20
	}

	const query = "SELECT round_id, user_id, operator_id, bet_amount, win_amount, user_bets, win_pos, win_color, created_at " +
		"FROM settlements WHERE user_id = ? AND operator_id = ? ORDER BY created_at DESC LIMIT ?"

	rows, err := repo.dbhandler.PrepareAndQuery(query, userID, operatorID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var settlements []model.Settlement

	for rows.Next() {
		settlement, err := scanSettlement(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		settlements = append(settlements, *settlement)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return settlements, nil
}

func (repo *SettlementRepository) GetByRound(userID, operatorID, roundID string) (*model.Settlement, error) {
	const op = "repository.settlement.GetByRound"

	const query = "SELECT round_id, user_id, operator_id, bet_amount, win_amount, user_bets, win_pos, win_color, created_at " +
		"FROM settlements WHERE user_id = ? AND operator_id = ? AND round_id = ? LIMIT 1"

	row, err := repo.dbhandler.PrepareAndQueryRow(query, userID, operatorID, roundID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	settlement, err := scanSettlement(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return settlement, nil
}

func scanSettlement(scan func(dest ...interface{}) error) (*model.Settlement, error) {
	var (
		settlement model.Settlement
		betAmount  float64
		winAmount  float64
		userBets   []byte
		color      string
	)

	err := scan(
		&settlement.RoundID,
		&settlement.UserID,
		&settlement.OperatorID,
		&betAmount,
		&winAmount,
		&userBets,
		&settlement.Position,
		&color,
		&settlement.CreatedAt)
	if err != nil {
		return nil, err
	}

	settlement.TotalStake = converter.ConvertAmountFloatToInt(betAmount)
	settlement.TotalPayout = converter.ConvertAmountFloatToInt(winAmount)
	settlement.Color = config.Color(color)

	var records []legRecord
	if len(userBets) > 0 {
		if err = json.Unmarshal(userBets, &records); err != nil {
			return nil, err
		}
	}

	for _, record := range records {
		settlement.Legs = append(settlement.Legs, model.LegResult{
			Chip:       record.Chip,
			Stake:      converter.ConvertAmountFloatToInt(record.BetAmount),
			Payout:     converter.ConvertAmountFloatToInt(record.WinAmount),
			Multiplier: record.Mult,
			Status:     model.BetStatus(record.Status),
		})
	}

	return &settlement, nil
}

func legRecords(legs []model.LegResult) []legRecord {
	records := make([]legRecord, 0, len(legs))

	for _, leg := range legs {
		records = append(records, legRecord{
			Chip:      leg.Chip,
			BetAmount: converter.ConvertAmountIntToFloat(leg.Stake),
			WinAmount: converter.ConvertAmountIntToFloat(leg.Payout),
			Mult:      leg.Multiplier,
			Status:    string(leg.Status),
		})
	}

	return records
}
