package history

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/exp/slog"

	"github.com/cloudstok/flash-roulette-backend/internal/config"
	"github.com/cloudstok/flash-roulette-backend/internal/game/payout"
	resp "github.com/cloudstok/flash-roulette-backend/internal/lib/api/response"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/converter"
	"github.com/cloudstok/flash-roulette-backend/internal/lib/logger/sl"
	"github.com/cloudstok/flash-roulette-backend/internal/model"
)

// SettlementLister is the read side of the settlement store.
type SettlementLister interface {
	ListByUser(userID, operatorID string, limit int) ([]model.Settlement, error)
	GetByRound(userID, operatorID, roundID string) (*model.Settlement, error)
}

type Response struct {
	resp.Response
	Data interface{} `json:"data,omitempty"`
}

type betView struct {
	Chip      string  `json:"chip"`
	Shape     string  `json:"shape"`
	BetAmount float64 `json:"betAmount"`
	WinAmount float64 `json:"winAmount"`
	Mult      int     `json:"mult"`
	Status    string  `json:"status"`
}

type roundView struct {
	RoundID    string    `json:"round_id"`
	UserID     string    `json:"user_id"`
	OperatorID string    `json:"operator_id"`
	BetAmount  float64   `json:"bet_amount"`
	WinAmount  float64   `json:"win_amount"`
	WinPos     int       `json:"win_pos"`
	WinColor   string    `json:"win_color"`
	CreatedAt  time.Time `json:"created_at"`
	UserBets   []betView `json:"user_bets"`
}

// History serves the round history endpoints. Bet-shape labels and colors
// in the views are reconstructed from the stored chip and pocket; they are
// presentation only.
type History struct {
	log         *slog.Logger
	settlements SettlementLister
	table       *payout.Table
}

func NewHistory(log *slog.Logger, settlements SettlementLister, table *payout.Table) *History {
	return &History{
		log:         log,
		settlements: settlements,
		table:       table,
	}
}

func (h *History) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.history.List"

		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID := r.URL.Query().Get("user_id")
		operatorID := r.URL.Query().Get("operator_id")

		if userID == "" || operatorID == "" {
			render.JSON(w, r, resp.Error("missing user_id or operator_id", http.StatusBadRequest))

			return
		}

		limit := 20
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err == nil && parsed > 0 {
				limit = parsed
			}
		}

		settlements, err := h.settlements.ListByUser(userID, operatorID, limit)
		if err != nil {
			log.Error("failed to list settlements", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to fetch history", http.StatusInternalServerError))

			return
		}

		views := make([]roundView, 0, len(settlements))
		for _, settlement := range settlements {
			views = append(views, h.view(settlement))
		}

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Data:     views,
		})
	}
}

func (h *History) Detail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.history.Detail"

		log := h.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID := r.URL.Query().Get("user_id")
		operatorID := r.URL.Query().Get("operator_id")
		roundID := r.URL.Query().Get("round_id")

		if userID == "" || operatorID == "" || roundID == "" {
			render.JSON(w, r, resp.Error("missing required query parameters", http.StatusBadRequest))

			return
		}

		settlement, err := h.settlements.GetByRound(userID, operatorID, roundID)
		if err != nil {
			log.Error("failed to fetch round", sl.Err(err))

			render.JSON(w, r, resp.Error("failed to fetch round", http.StatusInternalServerError))

			return
		}

		// An unknown round answers with a zero-valued record rather than a
		// 404, matching what reporting consumers expect.
		if settlement == nil {
			render.JSON(w, r, Response{
				Response: resp.OK(),
				Data: roundView{
					RoundID:    roundID,
					UserID:     userID,
					OperatorID: operatorID,
					UserBets:   []betView{},
				},
			})

			return
		}

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Data:     h.view(*settlement),
		})
	}
}

func (h *History) view(settlement model.Settlement) roundView {
	bets := make([]betView, 0, len(settlement.Legs))

	for _, leg := range settlement.Legs {
		bets = append(bets, betView{
			Chip:      leg.Chip,
			Shape:     h.table.DescribeChip(leg.Chip),
			BetAmount: converter.ConvertAmountIntToFloat(leg.Stake),
			WinAmount: converter.ConvertAmountIntToFloat(leg.Payout),
			Mult:      leg.Multiplier,
			Status:    string(leg.Status),
		})
	}

	color := settlement.Color
	if color == config.None {
		color = config.ColorOf(settlement.Position)
	}

	return roundView{
		RoundID:    settlement.RoundID,
		UserID:     settlement.UserID,
		OperatorID: settlement.OperatorID,
		BetAmount:  converter.ConvertAmountIntToFloat(settlement.TotalStake),
		WinAmount:  converter.ConvertAmountIntToFloat(settlement.TotalPayout),
		WinPos:     settlement.Position,
		WinColor:   string(color),
		CreatedAt:  settlement.CreatedAt,
		UserBets:   bets,
	}
}
