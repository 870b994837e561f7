// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/poll"
)

// InvocationHeader carries the ID assigned to each contract call
const InvocationHeader = "X-Invocation-ID"

type ContractHandler struct {
	contract *poll.Contract
}

func NewContractHandler(contract *poll.Contract) *ContractHandler {
	return &ContractHandler{contract: contract}
}

// Invoke handles POST /contract/{fn}
// fn is one of vote_a, vote_b, get_results
func (h *ContractHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	fn := r.PathValue("fn")
	if fn == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "fn is required")
		return
	}

	invocationID := uuid.NewString()
	w.Header().Set(InvocationHeader, invocationID)

	out, err := h.contract.Invoke(r.Context(), fn)
	if err != nil {
		writeContractError(w, err, fn, invocationID)
		return
	}

	if res, ok := out.(poll.Results); ok {
		middleware.JSONResponse(w, http.StatusOK, resultsResponse(invocationID, res))
		return
	}

	slog.Info("contract invoked", "function", fn, "invocation_id", invocationID)
	middleware.JSONResponse(w, http.StatusOK, models.InvokeResponse{
		InvocationID: invocationID,
		Function:     fn,
	})
}

// GetResults handles GET /contract/get_results
// Pure read; safe for polling from a front end
func (h *ContractHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	invocationID := uuid.NewString()
	w.Header().Set(InvocationHeader, invocationID)

	res, err := h.contract.GetResults(r.Context())
	if err != nil {
		writeContractError(w, err, poll.FuncGetResults, invocationID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resultsResponse(invocationID, res))
}

func resultsResponse(invocationID string, res poll.Results) models.ResultsResponse {
	pctA, pctB := res.Percentages()
	return models.ResultsResponse{
		InvocationID: invocationID,
		TallyA:       res.A,
		TallyB:       res.B,
		Total:        res.Total(),
		PercentA:     pctA,
		PercentB:     pctB,
	}
}

func writeContractError(w http.ResponseWriter, err error, fn, invocationID string) {
	switch {
	case errors.Is(err, poll.ErrUnknownFunction):
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown contract function: "+fn)
	case errors.Is(err, poll.ErrOverflow):
		slog.Warn("vote rejected at maximum count", "function", fn, "invocation_id", invocationID)
		middleware.ErrorResponse(w, http.StatusConflict, "Option has reached its maximum count")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Warn("invocation abandoned", "function", fn, "invocation_id", invocationID, "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Invocation cancelled")
	default:
		slog.Error("failed to invoke contract", "function", fn, "invocation_id", invocationID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
	}
}
