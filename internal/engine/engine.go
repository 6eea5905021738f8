package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/exp/slog"

	"github.com/cloudstok/flash-roulette-backend/internal/game/bet"
	"github.com/cloudstok/flash-roulette-backend/internal/game/payout"
	"github.com/cloudstok/flash-roulette-backend/internal/game/settle"
	"github.com/cloudstok/flash-roulette-backend/internal/game/wheel"
	"github.com/cloudstok/flash-roulette-backend/internal/jobs"
	"github.com/cloudstok/flash-roulette-backend/internal/ledger"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/converter"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/logger/sl"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
	"github.com/cloudstok/flash-roulette-backend/internal/session"
)

var (
	ErrInvalidSession      = errors.New("invalid player details")
	ErrInvalidPayload      = errors.New("invalid bet payload")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrLedgerRejected      = errors.New("bet cancelled by upstream ledger")
	ErrInternal            = errors.New("bet could not be processed")
)

type RoundState string

const (
	StateValidated     RoundState = "VALIDATED"
	StateDebitPending  RoundState = "DEBIT_PENDING"
	StateDebited       RoundState = "DEBITED"
	StateOutcomeDrawn  RoundState = "OUTCOME_DRAWN"
	StateCreditPending RoundState = "CREDIT_PENDING"
	StateCredited      RoundState = "CREDITED"
	StateNoCredit      RoundState = "NO_CREDIT"
	StateSettled       RoundState = "SETTLED"
)

const (
	EventBetError    = "betError"
	EventBetAccepted = "bet"
	EventRoundResult = "result"
)

type SettlementStore interface {
	Insert(settlement model.Settlement) error
}

// Emitter pushes one named event to one player connection.
type Emitter interface {
	Emit(connID, event string, data interface{})
}

type BetError struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

type BetAccepted struct {
	RoundID string  `json:"roundId"`
	Balance float64 `json:"balance"`
}

type LegResultData struct {
	Chip      string  `json:"chip"`
	BetAmount float64 `json:"betAmount"`
	WinAmount float64 `json:"winAmount"`
	Mult      int     `json:"mult"`
	Status    string  `json:"status"`
}

type RoundResult struct {
	RoundID     string          `json:"roundId"`
	Position    int             `json:"winPos"`
	Color       string          `json:"winColor"`
	TotalPayout float64         `json:"totalWin"`
	Balance     float64         `json:"balance"`
	Bets        []LegResultData `json:"bets"`
}

// Engine settles one round of the wheel per accepted bet batch: validate,
// debit, draw, compute, credit, persist. Money movement is strictly
// debit-before-credit and a round is never settled without a successful
// debit.
type Engine struct {
	log        *slog.Logger
	failedBets *slog.Logger
	validator  *bet.Validator
	table      *payout.Table
	roller     wheel.Roller
	cache      session.Cache
	ledger     ledger.Ledger
	store      SettlementStore
	emitter    Emitter
	scheduler  *jobs.Scheduler
	delay      time.Duration

	// settled guards the once-per-round boundary between the scheduled
	// settlement job and the teardown path.
	settled *gocache.Cache

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	pending map[string][]*pendingRound
}

type pendingRound struct {
	roundID string
	handle  *jobs.Pending
	job     *settleJob
}

func New(
	log *slog.Logger,
	table *payout.Table,
	roller wheel.Roller,
	cache session.Cache,
	ledgerClient ledger.Ledger,
	store SettlementStore,
	emitter Emitter,
	scheduler *jobs.Scheduler,
	delay time.Duration) *Engine {
	return &Engine{
		log:        log,
		failedBets: log.With(slog.String("component", "failed_bets")),
		validator:  bet.NewValidator(table),
		table:      table,
		roller:     roller,
		cache:      cache,
		ledger:     ledgerClient,
		store:      store,
		emitter:    emitter,
		scheduler:  scheduler,
		delay:      delay,
		settled:    gocache.New(time.Hour, 2*time.Hour),
		locks:      make(map[string]*sync.Mutex),
		pending:    make(map[string][]*pendingRound),
	}
}

// PlaceBet runs one round up to the accepted bet. The remainder of the
// round (credit, persistence, result emit) fires after the settlement delay.
func (e *Engine) PlaceBet(ctx context.Context, connID string, raw []model.RawBet) error {
	const op = "engine.Engine.PlaceBet"

	log := e.log.With(
		slog.String("op", op),
		slog.String("conn_id", connID),
	)

	playerSession, err := e.cache.Get(ctx, connID)
	if err != nil {
		log.Error("failed to read player session", sl.Err(err))

		return e.reject(connID, raw, ErrInternal)
	}
	if playerSession == nil {
		return e.reject(connID, raw, ErrInvalidSession)
	}

	log = log.With(slog.String("user_id", playerSession.UserID))

	result := e.validator.Validate(raw)
	if result.InvalidCount > 0 {
		log.Info("bet batch rejected by validator", sl.Int("invalid_count", result.InvalidCount))

		return e.reject(connID, raw, ErrInvalidPayload)
	}

	// One round at a time per player: holding the lock across the balance
	// check, the debit and the cache write closes the check-then-act race
	// that would let two rounds double-spend the cached balance.
	lock := e.lockFor(playerSession.UserID)
	lock.Lock()
	defer lock.Unlock()

	playerSession, err = e.cache.Get(ctx, connID)
	if err != nil || playerSession == nil {
		return e.reject(connID, raw, ErrInvalidSession)
	}

	if playerSession.Balance < result.TotalStake {
		log.Info("cached balance below stake, aborting before ledger call",
			sl.Int("balance", playerSession.Balance),
			sl.Int("total_stake", result.TotalStake))

		return e.reject(connID, raw, ErrInsufficientBalance)
	}

	roundID := uuid.New().String()
	log = log.With(slog.String("round_id", roundID), slog.String("state", string(StateDebitPending)))

	txnID, err := e.ledger.Debit(ctx, ledger.DebitRequest{
		UserID:     playerSession.UserID,
		OperatorID: playerSession.OperatorID,
		Amount:     result.TotalStake,
		RoundID:    roundID,
	})
	if err != nil {
		log.Error("ledger rejected debit, round aborted", sl.Err(err))

		return e.reject(connID, raw, ErrLedgerRejected)
	}

	// Mirror the debit into the cache before anything else can fail, so a
	// later crash cannot leave the cached balance ahead of the ledger.
	playerSession.Balance -= result.TotalStake
	if err = e.cache.Set(ctx, connID, playerSession); err != nil {
		log.Error("failed to persist debited balance to session cache", sl.Err(err))
	}

	log.Info("bet debited",
		slog.String("txn_id", txnID),
		sl.Int("total_stake", result.TotalStake),
		sl.Int("balance", playerSession.Balance))

	e.emitter.Emit(connID, EventBetAccepted, BetAccepted{
		RoundID: roundID,
		Balance: converter.ConvertAmountIntToFloat(playerSession.Balance),
	})

	outcome := e.roller.Draw()
	totalPayout, legResults := settle.Settle(result.Legs, outcome, e.table)

	log.Info("outcome drawn",
		slog.String("state", string(StateOutcomeDrawn)),
		sl.Int("win_pos", outcome.Position),
		sl.String("win_color", string(outcome.Color)),
		sl.Int("total_payout", totalPayout))

	job := &settleJob{
		engine:      e,
		connID:      connID,
		userID:      playerSession.UserID,
		operatorID:  playerSession.OperatorID,
		roundID:     roundID,
		debitTxnID:  txnID,
		totalStake:  result.TotalStake,
		totalPayout: totalPayout,
		outcome:     outcome,
		legs:        legResults,
		sessionLive: true,
	}

	handle := e.scheduler.Dispatch(job, e.delay)
	e.trackPending(connID, &pendingRound{roundID: roundID, handle: handle, job: job})

	return nil
}

// TeardownSession cancels the deferred settlement of every round still
// pending on the connection and re-runs it immediately in ledger-only mode,
// so owed winnings survive the session while no stale cache entry is
// touched.
func (e *Engine) TeardownSession(connID string) {
	e.mu.Lock()
	rounds := e.pending[connID]
	delete(e.pending, connID)
	e.mu.Unlock()

	for _, round := range rounds {
		if round.handle.Cancel() {
			round.job.sessionLive = false
			e.scheduler.Enqueue(round.job)
		}
	}
}

type settleJob struct {
	engine      *Engine
	connID      string
	userID      string
	operatorID  string
	roundID     string
	debitTxnID  string
	totalStake  int
	totalPayout int
	outcome     model.RoundOutcome
	legs        []model.LegResult
	sessionLive bool
}

func (j *settleJob) Execute() {
	j.engine.completeRound(j)
}

func (e *Engine) completeRound(j *settleJob) {
	const op = "engine.Engine.completeRound"

	log := e.log.With(
		slog.String("op", op),
		slog.String("round_id", j.roundID),
		slog.String("user_id", j.userID),
	)

	// The teardown path and the scheduled job can both reach here; only one
	// may settle the round.
	if err := e.settled.Add(j.roundID, true, gocache.DefaultExpiration); err != nil {
		return
	}

	ctx := context.Background()
	state := StateNoCredit
	credited := false

	if j.totalPayout > 0 {
		state = StateCreditPending

		_, err := e.ledger.Credit(ctx, ledger.CreditRequest{
			UserID:     j.userID,
			OperatorID: j.operatorID,
			Amount:     j.totalPayout,
			RefTxnID:   j.debitTxnID,
		})
		if err != nil {
			// The round still settles: the player already saw an accepted
			// bet. This is a reconciliation defect to be resolved
			// out-of-band, never a silent success.
			log.Error("credit rejected, winnings owed pending reconciliation",
				sl.Err(err),
				slog.String("ref_txn_id", j.debitTxnID),
				sl.Int("total_payout", j.totalPayout))
		} else {
			state = StateCredited
			credited = true
		}
	}

	balance := 0
	if j.sessionLive {
		balance = e.refreshBalance(ctx, j, credited)
	}

	settlement := model.Settlement{
		RoundID:     j.roundID,
		UserID:      j.userID,
		OperatorID:  j.operatorID,
		TotalStake:  j.totalStake,
		TotalPayout: j.totalPayout,
		Legs:        j.legs,
		Position:    j.outcome.Position,
		Color:       j.outcome.Color,
		CreatedAt:   time.Now(),
	}

	if err := e.store.Insert(settlement); err != nil {
		// Money movement is already final; a missing row is an audit gap,
		// not a player-facing failure.
		log.Error("failed to persist settlement, audit record missing", sl.Err(err))
	}

	log.Info("round settled",
		slog.String("state", string(StateSettled)),
		slog.String("credit_state", string(state)),
		sl.Int("total_payout", j.totalPayout))

	if j.sessionLive {
		e.emitter.Emit(j.connID, EventRoundResult, RoundResult{
			RoundID:     j.roundID,
			Position:    j.outcome.Position,
			Color:       string(j.outcome.Color),
			TotalPayout: converter.ConvertAmountIntToFloat(j.totalPayout),
			Balance:     converter.ConvertAmountIntToFloat(balance),
			Bets:        legResultData(j.legs),
		})
	}

	e.clearPending(j.connID, j.roundID)
}

// refreshBalance mirrors a successful credit into the cached balance and
// returns the balance to report. Taken under the player lock so concurrent
// rounds see a consistent value.
func (e *Engine) refreshBalance(ctx context.Context, j *settleJob, credited bool) int {
	lock := e.lockFor(j.userID)
	lock.Lock()
	defer lock.Unlock()

	playerSession, err := e.cache.Get(ctx, j.connID)
	if err != nil || playerSession == nil {
		return 0
	}

	if credited {
		playerSession.Balance += j.totalPayout
		if err = e.cache.Set(ctx, j.connID, playerSession); err != nil {
			e.log.Error("failed to persist credited balance to session cache",
				sl.Err(err),
				slog.String("round_id", j.roundID))
		}
	}

	return playerSession.Balance
}

func (e *Engine) reject(connID string, raw []model.RawBet, cause error) error {
	e.failedBets.Error("bet rejected",
		slog.String("conn_id", connID),
		sl.Any("request", raw),
		sl.Err(cause))

	e.emitter.Emit(connID, EventBetError, BetError{
		Message: cause.Error(),
		Status:  false,
	})

	return cause
}

func (e *Engine) lockFor(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}

	return lock
}

func (e *Engine) trackPending(connID string, round *pendingRound) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending[connID] = append(e.pending[connID], round)
}

func (e *Engine) clearPending(connID, roundID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rounds := e.pending[connID]
	for i, round := range rounds {
		if round.roundID == roundID {
			e.pending[connID] = append(rounds[:i], rounds[i+1:]...)

			break
		}
	}

	if len(e.pending[connID]) == 0 {
		delete(e.pending, connID)
	}
}

func legResultData(legs []model.LegResult) []LegResultData {
	data := make([]LegResultData, 0, len(legs))

	for _, leg := range legs {
		data = append(data, LegResultData{
			Chip:      leg.Chip,
			BetAmount: converter.ConvertAmountIntToFloat(leg.Stake),
			WinAmount: converter.ConvertAmountIntToFloat(leg.Payout),
			Mult:      leg.Multiplier,
			Status:    string(leg.Status),
		})
	}

	return data
}
