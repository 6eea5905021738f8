package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/cloudstok/flash-roulette-backend/internal/lib/converter"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/logger/sl"
)

// ErrRejected covers every upstream refusal: an explicit decline, a non-2xx
// status, or a timeout. The orchestrator treats them all the same way.
var ErrRejected = errors.New("ledger rejected transaction")

type TxnType int

const (
	TxnDebit  TxnType = 0
	TxnCredit TxnType = 1
)

type Ledger interface {
	Debit(ctx context.Context, req DebitRequest) (string, error)
	Credit(ctx context.Context, req CreditRequest) (string, error)
}

// DebitRequest stakes a round. RoundID doubles as the idempotency key.
type DebitRequest struct {
	UserID     string
	OperatorID string
	Amount     int
	RoundID    string
}

// CreditRequest pays winnings. RefTxnID is the debit's transaction id and
// establishes the auditable debit -> credit chain for the round.
type CreditRequest struct {
	UserID     string
	OperatorID string
	Amount     int
	RefTxnID   string
}

type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
	timeout time.Duration
}

func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		http:    &http.Client{},
		baseURL: baseURL,
		timeout: timeout,
	}
}

type txnRequest struct {
	TxnID       string  `json:"txn_id"`
	UserID      string  `json:"user_id"`
	OperatorID  string  `json:"operator_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	TxnType     TxnType `json:"txn_type"`
	TxnRefID    string  `json:"txn_ref_id,omitempty"`
}

type txnResponse struct {
	Status bool   `json:"status"`
	TxnID  string `json:"txn_id"`
}

func (c *Client) Debit(ctx context.Context, req DebitRequest) (string, error) {
	const op = "ledger.Client.Debit"

	return c.post(ctx, op, txnRequest{
		TxnID:       req.RoundID,
		UserID:      req.UserID,
		OperatorID:  req.OperatorID,
		Amount:      converter.ConvertAmountIntToFloat(req.Amount),
		Description: "flash roulette bet placed",
		TxnType:     TxnDebit,
	})
}

func (c *Client) Credit(ctx context.Context, req CreditRequest) (string, error) {
	const op = "ledger.Client.Credit"

	return c.post(ctx, op, txnRequest{
		TxnID:       uuid.New().String(),
		UserID:      req.UserID,
		OperatorID:  req.OperatorID,
		Amount:      converter.ConvertAmountIntToFloat(req.Amount),
		Description: "flash roulette winnings",
		TxnType:     TxnCredit,
		TxnRefID:    req.RefTxnID,
	})
}

func (c *Client) post(ctx context.Context, op string, payload txnRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/service/user/transaction", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		// A call that never returns must not hang the round: the bounded
		// timeout resolves to the rejected path.
		c.log.Error("ledger call failed", sl.Err(err), sl.String("txn_id", payload.TxnID))

		return "", fmt.Errorf("%s: %w", op, ErrRejected)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		c.log.Error("ledger returned non-ok status",
			sl.Int("status", httpResp.StatusCode),
			sl.String("txn_id", payload.TxnID))

		return "", fmt.Errorf("%s: %w", op, ErrRejected)
	}

	var resp txnResponse
	if err = json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrRejected)
	}

	if !resp.Status {
		return "", fmt.Errorf("%s: %w", op, ErrRejected)
	}

	return resp.TxnID, nil
}
